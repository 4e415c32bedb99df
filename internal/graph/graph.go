package graph

import (
	"log/slog"
	"slices"

	"github.com/vk/framegraph/internal/engine"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/nodetable"
	"github.com/vk/framegraph/internal/scheduler"
)

// Stats summarises a graph's lifetime.
type Stats struct {
	// Frames counts successful Render calls.
	Frames uint64
	// Failures counts Render calls that returned an error.
	Failures uint64
	Nodes    int
	Sinks    int
	// Slots and PeakSlots describe the buffer layout of the last successful
	// frame.
	Slots     int
	PeakSlots int
}

// Graph owns a set of nodes and renders them frame by frame.
type Graph struct {
	table  nodetable.Table
	sched  *scheduler.Scheduler
	engine *engine.Engine
	sinks  []node.ID
	order  []node.ID
	logger *slog.Logger
	stats  Stats
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for graph lifecycle events. Frames that
// render successfully are never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

// New returns an empty Graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		sched:  scheduler.New(),
		engine: engine.New(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Insert adds n to the graph and returns its ID. A node without outputs is a
// sink and will be rendered by every subsequent frame.
func (g *Graph) Insert(n node.Node) node.ID {
	id := g.table.Insert(n)
	if n.NumOutputs() == 0 {
		g.sinks = append(g.sinks, id)
	}
	g.logger.Debug("Node inserted.", "id", id, "outputs", n.NumOutputs())
	return id
}

// Remove deletes the node behind id and returns it. Nodes still reading from
// it will fail the next frame with ErrInvalidConnection.
func (g *Graph) Remove(id node.ID) (node.Node, bool) {
	n, ok := g.table.Remove(id)
	if !ok {
		return nil, false
	}
	if i := slices.Index(g.sinks, id); i >= 0 {
		g.sinks = slices.Delete(g.sinks, i, i+1)
	}
	g.logger.Debug("Node removed.", "id", id)
	return n, true
}

// Get returns the node behind id.
func (g *Graph) Get(id node.ID) (node.Node, bool) {
	e := g.table.Get(id)
	if e == nil {
		return nil, false
	}
	return e.Node, true
}

// Lookup returns the node behind id if it has concrete type T.
func Lookup[T node.Node](g *Graph, id node.ID) (T, bool) {
	var zero T
	n, ok := g.Get(id)
	if !ok {
		return zero, false
	}
	t, ok := n.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// Render produces one frame. Scheduling errors are returned before any node
// renders and leave the graph ready for the next call. A panic raised by a
// node propagates to the caller; the graph then reports ErrPoisoned until
// Reset is called.
func (g *Graph) Render() error {
	if err := g.sched.Schedule(&g.table, g.sinks); err != nil {
		g.stats.Failures++
		g.logger.Debug("Frame scheduling failed.", "error", err)
		return err
	}

	g.engine.Execute(&g.table, g.sched)

	g.order = append(g.order[:0], g.sched.Order()...)
	g.stats.Slots = g.sched.SlotCount()
	g.stats.PeakSlots = g.sched.PeakSlots()
	g.sched.Finish(&g.table)
	g.stats.Frames++
	return nil
}

// Reset discards a frame left unfinished by a panicking node.
func (g *Graph) Reset() {
	g.sched.Cleanup(&g.table)
	g.logger.Info("Graph state reset.")
}

// Order returns the activation order of the last successful frame.
func (g *Graph) Order() []node.ID {
	return slices.Clone(g.order)
}

// Sinks returns the sink nodes in the order they are rendered.
func (g *Graph) Sinks() []node.ID {
	return slices.Clone(g.sinks)
}

// Stats returns the current counters.
func (g *Graph) Stats() Stats {
	s := g.stats
	s.Nodes = g.table.Len()
	s.Sinks = len(g.sinks)
	return s
}
