// Package sine provides the "sine" node type: a sine oscillator with a
// single output.
package sine

import (
	"context"
	"fmt"
	"math"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Args defines the arguments for the sine node. Phase is in cycles.
type Args struct {
	Frequency float64 `hcl:"frequency,optional" yaml:"frequency"`
	Amplitude float64 `hcl:"amplitude,optional" yaml:"amplitude"`
	Phase     float64 `hcl:"phase,optional" yaml:"phase"`
}

// Node is a sine oscillator. Its phase carries over between frames.
type Node struct {
	step      float64
	amplitude float64
	phase     float64
}

// New returns an oscillator at frequency Hz for the given sample rate.
func New(frequency, amplitude, phase float64, sampleRate int) *Node {
	_, frac := math.Modf(phase)
	if frac < 0 {
		frac++
	}
	return &Node{
		step:      frequency / float64(sampleRate),
		amplitude: amplitude,
		phase:     frac,
	}
}

func (n *Node) NumOutputs() int        { return 1 }
func (n *Node) Inspect(node.Inspector) {}

// Render writes the next len(outputs[0]) samples. A zero amplitude renders
// as silence, but the phase still advances.
func (n *Node) Render(outputs [][]float32, _ node.RenderContext) bool {
	out := outputs[0]
	if n.amplitude == 0 {
		n.advance(len(out))
		return false
	}
	for i := range out {
		out[i] = float32(n.amplitude * math.Sin(2*math.Pi*n.phase))
		n.phase += n.step
		if n.phase >= 1 {
			n.phase -= 1
		}
	}
	return true
}

func (n *Node) advance(samples int) {
	_, n.phase = math.Modf(n.phase + n.step*float64(samples))
}

// Register registers the node type with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("sine", &registry.RegisteredNode{
		NewArgs: func() any { return &Args{Frequency: 440, Amplitude: 1} },
		Build: func(_ context.Context, args any, s config.Settings) (node.Node, error) {
			a := args.(*Args)
			nyquist := float64(s.SampleRate) / 2
			if a.Frequency < 0 || a.Frequency >= nyquist {
				return nil, fmt.Errorf("frequency must be in [0, %g), got %g", nyquist, a.Frequency)
			}
			return New(a.Frequency, a.Amplitude, a.Phase, s.SampleRate), nil
		},
	})
}
