package scheduler

import (
	"fmt"

	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/nodetable"
)

type phase int

const (
	enterPhase phase = iota
	leavePhase
)

// inspector is the node.Inspector handed to Node.Inspect. A single instance
// is reused for every call; the first error a node triggers is kept and the
// rest of its declarations are ignored.
type inspector struct {
	s     *Scheduler
	table *nodetable.Table
	id    node.ID
	phase phase
	err   error
}

func (in *inspector) reset(id node.ID, p phase) {
	in.id = id
	in.phase = p
	in.err = nil
}

func (in *inspector) NumOutputSamples() (int, bool) {
	e := in.table.Get(in.id)
	n := e.Sched.NumOutputSamples
	return n, n > 0
}

func (in *inspector) DeclareInput(src node.Port) node.InputDecl {
	n, _ := in.NumOutputSamples()
	return node.NewInputDecl(in, src, n)
}

func (in *inspector) Declare(src node.Port, numSamples int) {
	if in.err != nil {
		return
	}
	in.err = in.declare(src, numSamples)
}

func (in *inspector) declare(src node.Port, numSamples int) error {
	e := in.table.Get(src.Node)
	if e == nil || src.Output < 0 || int(src.Output) >= len(e.Sched.Outputs) {
		return fmt.Errorf("node %s declares input %s: %w", in.id, src, ErrInvalidConnection)
	}
	si := &e.Sched

	if in.phase == leavePhase {
		// The consumer is about to take the next activation position.
		si.Outputs[src.Output].LastUse = len(in.s.activation)
		return nil
	}

	if numSamples <= 0 {
		return fmt.Errorf("node %s declares input %s: %w", in.id, src, ErrSampleCountUnspecified)
	}

	if si.State == nodetable.Inactive {
		// First time this frame: drop what the previous frame left behind.
		si.ClearUses()
		si.NumOutputSamples = numSamples
		si.State = nodetable.Found
		in.s.stack = append(in.s.stack, stackEntry{id: src.Node})
		return nil
	}

	if si.NumOutputSamples != numSamples {
		return fmt.Errorf("node %s wants %d samples from %s, already demanded as %d: %w",
			in.id, numSamples, src, si.NumOutputSamples, ErrSampleCountMismatch)
	}

	// Found sources are pushed again so they are explored before this
	// node's Leave. Backedge sources keep their state so the next pop
	// reports the loop.
	if si.State != nodetable.Active {
		in.s.stack = append(in.s.stack, stackEntry{id: src.Node})
	}
	return nil
}
