// Package gain provides the "gain" node type, which scales its single input.
package gain

import (
	"context"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Args defines the arguments for the gain node.
type Args struct {
	Gain float64 `hcl:"gain,optional" yaml:"gain"`
}

// Node multiplies its input by a constant factor.
type Node struct {
	input node.Port
	gain  float32
}

// New returns a gain node reading from input.
func New(input node.Port, gain float64) *Node {
	return &Node{input: input, gain: float32(gain)}
}

func (n *Node) NumOutputs() int { return 1 }

// Connect implements registry.Connector.
func (n *Node) Connect(inputs []node.Port) error {
	n.input = inputs[0]
	return nil
}

// Inspect reads as many samples as the node produces.
func (n *Node) Inspect(in node.Inspector) {
	in.DeclareInput(n.input).Finish()
}

// Render scales the input. Silent input, or a gain of zero, is passed on as
// silence.
func (n *Node) Render(outputs [][]float32, rc node.RenderContext) bool {
	h, ok := rc.Input(n.input)
	if !ok || !h.IsActive() || n.gain == 0 {
		return false
	}
	out, samples := outputs[0], h.Samples()
	for i := range out {
		out[i] = samples[i] * n.gain
	}
	return true
}

// Register registers the node type with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("gain", &registry.RegisteredNode{
		NewArgs: func() any { return &Args{Gain: 1} },
		Inputs:  registry.Exactly(1),
		Build: func(_ context.Context, args any, _ config.Settings) (node.Node, error) {
			return New(node.Port{}, args.(*Args).Gain), nil
		},
	})
}
