// Package zero provides the "zero" node type: a source that is always
// silent. Its outputs are never written, so readers observe them through
// the lazy zero fill.
package zero

import (
	"context"
	"fmt"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Args defines the arguments for the zero node.
type Args struct {
	Outputs int `hcl:"outputs,optional" yaml:"outputs"`
}

// Node is a silent source.
type Node struct {
	outputs int
}

// New returns a silent source with the given number of outputs.
func New(outputs int) *Node {
	return &Node{outputs: outputs}
}

func (n *Node) NumOutputs() int        { return n.outputs }
func (n *Node) Inspect(node.Inspector) {}

// Render reports silence without touching outputs.
func (n *Node) Render([][]float32, node.RenderContext) bool { return false }

// Register registers the node type with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("zero", &registry.RegisteredNode{
		NewArgs: func() any { return &Args{Outputs: 1} },
		Build: func(_ context.Context, args any, _ config.Settings) (node.Node, error) {
			a := args.(*Args)
			if a.Outputs < 1 {
				return nil, fmt.Errorf("outputs must be at least 1, got %d", a.Outputs)
			}
			return New(a.Outputs), nil
		},
	})
}
