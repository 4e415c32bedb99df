// Package split provides the "split" node type, which copies its single
// input to several outputs.
//
// Reading one output from several nodes needs no split; it exists to give
// each branch its own buffer, addressed as split[0], split[1] and so on.
package split

import (
	"context"
	"fmt"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Args defines the arguments for the split node.
type Args struct {
	Outputs int `hcl:"outputs,optional" yaml:"outputs"`
}

// Node copies its input to every output.
type Node struct {
	input   node.Port
	outputs int
}

// New returns a split with the given number of outputs.
func New(input node.Port, outputs int) *Node {
	return &Node{input: input, outputs: outputs}
}

func (n *Node) NumOutputs() int { return n.outputs }

// Connect implements registry.Connector.
func (n *Node) Connect(inputs []node.Port) error {
	n.input = inputs[0]
	return nil
}

func (n *Node) Inspect(in node.Inspector) {
	in.DeclareInput(n.input).Finish()
}

func (n *Node) Render(outputs [][]float32, rc node.RenderContext) bool {
	h, ok := rc.Input(n.input)
	if !ok || !h.IsActive() {
		return false
	}
	samples := h.Samples()
	for _, out := range outputs {
		copy(out, samples)
	}
	return true
}

// Register registers the node type with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("split", &registry.RegisteredNode{
		NewArgs: func() any { return &Args{Outputs: 2} },
		Inputs:  registry.Exactly(1),
		Build: func(_ context.Context, args any, _ config.Settings) (node.Node, error) {
			a := args.(*Args)
			if a.Outputs < 1 {
				return nil, fmt.Errorf("outputs must be at least 1, got %d", a.Outputs)
			}
			return New(node.Port{}, a.Outputs), nil
		},
	})
}
