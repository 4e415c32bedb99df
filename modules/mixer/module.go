// Package mixer provides the "mixer" node type, which sums any number of
// inputs, each with its own gain.
package mixer

import (
	"context"
	"fmt"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Args defines the arguments for the mixer node. Gains, when set, holds one
// entry per input; otherwise every input has unity gain.
type Args struct {
	Gains []float64 `hcl:"gains,optional" yaml:"gains"`
}

// Node is a weighted sum of its inputs.
type Node struct {
	inputs []node.Port
	gains  []float32
}

// New returns a mixer with the given per-input gains. Nil gains means unity
// gain for every input connected later.
func New(gains []float64) *Node {
	n := &Node{}
	for _, g := range gains {
		n.gains = append(n.gains, float32(g))
	}
	return n
}

func (n *Node) NumOutputs() int { return 1 }

// Connect implements registry.Connector.
func (n *Node) Connect(inputs []node.Port) error {
	switch {
	case n.gains == nil:
		n.gains = make([]float32, len(inputs))
		for i := range n.gains {
			n.gains[i] = 1
		}
	case len(n.gains) != len(inputs):
		return fmt.Errorf("mixer has %d gains for %d inputs", len(n.gains), len(inputs))
	}
	n.inputs = inputs
	return nil
}

func (n *Node) Inspect(in node.Inspector) {
	for _, p := range n.inputs {
		in.DeclareInput(p).Finish()
	}
}

// Render sums every active input. The output is silent only when all inputs
// are.
func (n *Node) Render(outputs [][]float32, rc node.RenderContext) bool {
	out := outputs[0]
	active := false
	for i, p := range n.inputs {
		h, ok := rc.Input(p)
		if !ok || !h.IsActive() || n.gains[i] == 0 {
			continue
		}
		if !active {
			clear(out)
			active = true
		}
		g := n.gains[i]
		for j, v := range h.Samples() {
			out[j] += v * g
		}
		h.Release()
	}
	return active
}

// Register registers the node type with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("mixer", &registry.RegisteredNode{
		NewArgs: func() any { return &Args{} },
		Inputs:  registry.AtLeast(1),
		Build: func(_ context.Context, args any, _ config.Settings) (node.Node, error) {
			return New(args.(*Args).Gains), nil
		},
	})
}
