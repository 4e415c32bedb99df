// Package meter provides the "meter" node type: a sink that measures peak
// and RMS levels of its inputs and logs them periodically.
package meter

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/ctxlog"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Args defines the arguments for the meter node. Interval is the number of
// frames per report and defaults to roughly one second.
type Args struct {
	Label    string `hcl:"label,optional" yaml:"label"`
	Interval int    `hcl:"interval,optional" yaml:"interval"`
	Samples  int    `hcl:"samples,optional" yaml:"samples"`
}

// Level is the measurement of one channel over one report interval.
type Level struct {
	Peak float64
	RMS  float64
}

// MinDB is the level reported for silence.
const MinDB = -120.0

// PeakDB and RMSDB convert to dBFS, floored at MinDB.
func (l Level) PeakDB() float64 { return toDB(l.Peak) }
func (l Level) RMSDB() float64  { return toDB(l.RMS) }

func toDB(v float64) float64 {
	if v <= 0 {
		return MinDB
	}
	return max(MinDB, 20*math.Log10(v))
}

// Node accumulates levels and reports them every interval frames.
type Node struct {
	inputs   []node.Port
	samples  int
	interval int
	logger   *slog.Logger

	frame   int
	peak    []float64
	sumSq   []float64
	count   []int
	reports []Level
}

// New returns a meter. Reports go to logger at Info level.
func New(samples, interval int, logger *slog.Logger) *Node {
	return &Node{samples: samples, interval: interval, logger: logger}
}

func (n *Node) NumOutputs() int { return 0 }

// Connect implements registry.Connector.
func (n *Node) Connect(inputs []node.Port) error {
	n.inputs = inputs
	n.peak = make([]float64, len(inputs))
	n.sumSq = make([]float64, len(inputs))
	n.count = make([]int, len(inputs))
	return nil
}

func (n *Node) Inspect(in node.Inspector) {
	for _, p := range n.inputs {
		in.DeclareInput(p).NumSamples(n.samples).Finish()
	}
}

func (n *Node) Render(_ [][]float32, rc node.RenderContext) bool {
	for i, p := range n.inputs {
		n.count[i] += n.samples
		h, ok := rc.Input(p)
		if !ok || !h.IsActive() {
			continue
		}
		for _, v := range h.Samples() {
			a := math.Abs(float64(v))
			n.peak[i] = max(n.peak[i], a)
			n.sumSq[i] += a * a
		}
	}

	n.frame++
	if n.frame >= n.interval {
		n.report()
	}
	return false
}

func (n *Node) report() {
	n.reports = n.reports[:0]
	for i := range n.inputs {
		l := Level{Peak: n.peak[i], RMS: math.Sqrt(n.sumSq[i] / float64(n.count[i]))}
		n.reports = append(n.reports, l)
		n.logger.Info("Meter levels.", "channel", i, "peak_db", round(l.PeakDB()), "rms_db", round(l.RMSDB()))
		n.peak[i], n.sumSq[i], n.count[i] = 0, 0, 0
	}
	n.frame = 0
}

func round(db float64) float64 {
	return math.Round(db*10) / 10
}

// Levels returns the most recent report, one Level per input.
func (n *Node) Levels() []Level {
	return append([]Level(nil), n.reports...)
}

// Register registers the node type with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("meter", &registry.RegisteredNode{
		NewArgs: func() any { return &Args{} },
		Inputs:  registry.AtLeast(1),
		Build: func(ctx context.Context, args any, s config.Settings) (node.Node, error) {
			a := args.(*Args)
			if a.Samples < 0 || a.Interval < 0 {
				return nil, fmt.Errorf("samples and interval must not be negative")
			}
			if a.Samples == 0 {
				a.Samples = s.BlockSize
			}
			if a.Interval == 0 {
				a.Interval = max(1, s.SampleRate/a.Samples)
			}
			logger := ctxlog.FromContext(ctx).With("node", "meter")
			if a.Label != "" {
				logger = logger.With("label", a.Label)
			}
			return New(a.Samples, a.Interval, logger), nil
		},
	})
}
