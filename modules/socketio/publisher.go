package socketio

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vk/framegraph/internal/node"
)

// Frame is the payload of one emitted event. Silent frames carry no
// samples.
type Frame struct {
	Stream     string    `json:"stream"`
	Seq        uint64    `json:"seq"`
	SampleRate int       `json:"sample_rate"`
	Active     bool      `json:"active"`
	Samples    []float32 `json:"samples,omitempty"`
}

// Stats counts frames by outcome.
type Stats struct {
	Queued  uint64
	Sent    uint64
	Failed  uint64
	Dropped uint64
}

// Options configures a publishing node.
type Options struct {
	Stream     string
	Event      string
	Queue      int
	Samples    int
	SampleRate int
	Logger     *slog.Logger
}

// Node is a sink publishing every frame of its input.
type Node struct {
	input node.Port
	opts  Options
	t     Transport

	seq    uint64
	frames chan Frame
	done   chan struct{}
	closed atomic.Bool
	once   sync.Once

	queued  atomic.Uint64
	sent    atomic.Uint64
	failed  atomic.Uint64
	dropped atomic.Uint64
}

// New returns a publisher emitting to t and starts its sender goroutine.
// Close must be called to stop it.
func New(t Transport, opts Options) *Node {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	n := &Node{
		opts:   opts,
		t:      t,
		frames: make(chan Frame, opts.Queue),
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *Node) NumOutputs() int { return 0 }

// Connect implements registry.Connector.
func (n *Node) Connect(inputs []node.Port) error {
	n.input = inputs[0]
	return nil
}

func (n *Node) Inspect(in node.Inspector) {
	in.DeclareInput(n.input).NumSamples(n.opts.Samples).Finish()
}

// Render copies the input into a Frame and queues it. It never blocks; a
// full queue drops the frame.
func (n *Node) Render(_ [][]float32, rc node.RenderContext) bool {
	if n.closed.Load() {
		return false
	}
	f := Frame{Stream: n.opts.Stream, Seq: n.seq, SampleRate: n.opts.SampleRate}
	n.seq++
	if h, ok := rc.Input(n.input); ok && h.IsActive() {
		f.Active = true
		f.Samples = append([]float32(nil), h.Samples()...)
	}

	select {
	case n.frames <- f:
		n.queued.Add(1)
	default:
		if n.dropped.Add(1) == 1 {
			n.opts.Logger.Warn("Publish queue full, dropping frames", "queue", n.opts.Queue)
		}
	}
	return false
}

func (n *Node) run() {
	defer close(n.done)
	for f := range n.frames {
		if err := n.t.Emit(n.opts.Event, f); err != nil {
			if n.failed.Add(1) == 1 {
				n.opts.Logger.Warn("Failed to emit frame", "seq", f.Seq, "error", err)
			}
			continue
		}
		n.sent.Add(1)
	}
}

// Stats returns a snapshot of the counters.
func (n *Node) Stats() Stats {
	return Stats{
		Queued:  n.queued.Load(),
		Sent:    n.sent.Load(),
		Failed:  n.failed.Load(),
		Dropped: n.dropped.Load(),
	}
}

// Close drains the queue, stops the sender and closes the transport. It is
// safe to call more than once.
func (n *Node) Close() error {
	n.once.Do(func() {
		n.closed.Store(true)
		close(n.frames)
		<-n.done
		n.t.Close()
		s := n.Stats()
		n.opts.Logger.Info("Publisher closed.", "sent", s.Sent, "failed", s.Failed, "dropped", s.Dropped)
	})
	return nil
}
