// Package output provides the "output" node type: the sink a host reads
// rendered frames from, one channel per input.
package output

import (
	"context"
	"fmt"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Args defines the arguments for the output node. Samples defaults to the
// patch's block_size. An on-demand output pulls its inputs only for frames
// requested with RequestFrame; the first frame is always pulled.
type Args struct {
	Samples  int  `hcl:"samples,optional" yaml:"samples"`
	OnDemand bool `hcl:"on_demand,optional" yaml:"on_demand"`
}

// Node keeps a copy of the last frame of every input.
type Node struct {
	inputs   []node.Port
	reader   *node.StreamReader
	samples  int
	onDemand bool
	filled   bool
	frames   uint64
	last     [][]float32
	active   []bool
}

// New returns an output demanding samples samples per input and frame.
func New(samples int) *Node {
	return &Node{samples: samples, reader: node.NewStreamReader()}
}

// NewOnDemand is New for an output that is gated by RequestFrame.
func NewOnDemand(samples int) *Node {
	n := New(samples)
	n.onDemand = true
	return n
}

func (n *Node) NumOutputs() int { return 0 }

// Connect implements registry.Connector.
func (n *Node) Connect(inputs []node.Port) error {
	n.inputs = inputs
	n.reader.SetSources(inputs)
	n.active = make([]bool, len(inputs))
	n.resize()
	return nil
}

func (n *Node) resize() {
	n.last = make([][]float32, len(n.inputs))
	for i := range n.last {
		n.last[i] = make([]float32, n.samples)
	}
}

// RequestFrame asks an on-demand output to pull its inputs in the next
// frame. A positive samples changes the frame size from then on.
func (n *Node) RequestFrame(samples int) {
	n.filled = false
	if samples > 0 && samples != n.samples {
		n.samples = samples
		n.resize()
	}
}

// Pending reports whether the output will pull its inputs in the next frame.
func (n *Node) Pending() bool {
	return !n.onDemand || !n.filled
}

func (n *Node) Inspect(in node.Inspector) {
	if !n.Pending() {
		return
	}
	for _, p := range n.inputs {
		in.DeclareInput(p).NumSamples(n.samples).Finish()
	}
}

func (n *Node) Render(_ [][]float32, rc node.RenderContext) bool {
	if !n.Pending() {
		// Nothing was declared, so there is nothing to read.
		return false
	}
	n.frames++
	for i, p := range n.inputs {
		h, ok := rc.Input(p)
		n.active[i] = ok && h.IsActive()
	}
	n.reader.Begin(rc)
	n.reader.Read(n.last)
	n.reader.End()
	n.filled = true
	return false
}

// Channels is the number of inputs.
func (n *Node) Channels() int { return len(n.inputs) }

// Frames counts frames the output pulled.
func (n *Node) Frames() uint64 { return n.frames }

// Samples returns a copy of the last pulled frame of channel ch and whether
// it was active. A silent channel is returned as zeros.
func (n *Node) Samples(ch int) ([]float32, bool) {
	return append([]float32(nil), n.last[ch]...), n.active[ch]
}

// Register registers the node type with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("output", &registry.RegisteredNode{
		NewArgs: func() any { return &Args{} },
		Inputs:  registry.AtLeast(1),
		Build: func(_ context.Context, args any, s config.Settings) (node.Node, error) {
			a := args.(*Args)
			if a.Samples < 0 {
				return nil, fmt.Errorf("samples must not be negative, got %d", a.Samples)
			}
			if a.Samples == 0 {
				a.Samples = s.BlockSize
			}
			if a.OnDemand {
				return NewOnDemand(a.Samples), nil
			}
			return New(a.Samples), nil
		},
	})
}
