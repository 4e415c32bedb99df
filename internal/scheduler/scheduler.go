package scheduler

import (
	"fmt"

	"github.com/vk/framegraph/internal/bufalloc"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/nodetable"
)

type stackEntry struct {
	id    node.ID
	leave bool
}

// Scheduler holds the per-frame working state. Its slices are reused across
// frames so a steady-state pass does not allocate.
type Scheduler struct {
	stack      []stackEntry
	activation []node.ID
	releases   releaseQueue
	alloc      bufalloc.Allocator
	insp       inspector
}

// New returns a Scheduler.
func New() *Scheduler {
	s := &Scheduler{}
	s.insp.s = s
	return s
}

// Schedule plans one frame for the nodes reachable from sinks. On success the
// activation order, per-output slots and per-node sample counts are stored in
// the table and the scheduler until Finish is called. On failure the state is
// rolled back and the returned error wraps one of the package sentinels.
func (s *Scheduler) Schedule(table *nodetable.Table, sinks []node.ID) error {
	if len(s.stack) > 0 || len(s.activation) > 0 || s.releases.Len() > 0 {
		return ErrPoisoned
	}

	s.insp.table = table
	if err := s.traverse(table, sinks); err != nil {
		s.cleanup(table)
		return err
	}
	s.assignSlots(table)
	return nil
}

func (s *Scheduler) traverse(table *nodetable.Table, sinks []node.ID) error {
	for _, sink := range sinks {
		e := table.Get(sink)
		if e == nil {
			return fmt.Errorf("sink %s: %w", sink, ErrInvalidConnection)
		}
		e.Sched.NumOutputSamples = 0
		e.Sched.State = nodetable.Found
		s.stack = append(s.stack, stackEntry{id: sink})
	}

	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		e := table.Get(top.id)

		if top.leave {
			if e.Sched.State != nodetable.Backedge {
				panic(fmt.Sprintf("scheduler: leaving %s in state %s", top.id, e.Sched.State))
			}
			// The entry stays on the stack until Inspect returns cleanly so
			// that cleanup still finds the node if it fails or panics.
			s.insp.reset(top.id, leavePhase)
			e.Node.Inspect(&s.insp)
			if s.insp.err != nil {
				return s.insp.err
			}
			s.stack = s.stack[:len(s.stack)-1]
			e.Sched.State = nodetable.Active
			e.Sched.Position = len(s.activation)
			s.activation = append(s.activation, top.id)
			continue
		}

		s.stack = s.stack[:len(s.stack)-1]
		switch e.Sched.State {
		case nodetable.Active:
			// Reached again through another consumer.
			continue
		case nodetable.Backedge:
			e.Sched.State = nodetable.Inactive
			return fmt.Errorf("node %s: %w", top.id, ErrFeedbackLoop)
		case nodetable.Inactive:
			panic(fmt.Sprintf("scheduler: entering undiscovered node %s", top.id))
		}

		e.Sched.State = nodetable.Backedge
		s.stack = append(s.stack, stackEntry{id: top.id, leave: true})
		s.insp.reset(top.id, enterPhase)
		e.Node.Inspect(&s.insp)
		if s.insp.err != nil {
			return s.insp.err
		}
	}
	return nil
}

// assignSlots walks the activation order, allocating each output at its
// producer's position and releasing it once the position passes its last
// consumer. Releases happen after the current node's allocations, so a node
// never writes into a slot it reads from.
func (s *Scheduler) assignSlots(table *nodetable.Table) {
	s.alloc.Reset()
	s.releases.clear()

	for i, id := range s.activation {
		si := &table.Get(id).Sched
		for k := range si.Outputs {
			si.Outputs[k].Slot = s.alloc.Allocate(si.NumOutputSamples)
		}
		for k := range si.Outputs {
			out := &si.Outputs[k]
			if out.LastUse == nodetable.NoUse {
				// Nobody reads it; the slot is scratch and free right away.
				s.alloc.Deallocate(out.Slot)
				continue
			}
			s.releases.push(release{lastUse: out.LastUse, slot: out.Slot})
		}
		for s.releases.Len() > 0 && s.releases.peek().lastUse <= i {
			s.alloc.Deallocate(s.releases.pop().slot)
		}
	}
}

// Finish ends a successful pass: every activated node returns to Inactive
// and the scheduler is ready for the next frame.
func (s *Scheduler) Finish(table *nodetable.Table) {
	for _, id := range s.activation {
		if e := table.Get(id); e != nil {
			e.Sched.State = nodetable.Inactive
		}
	}
	s.activation = s.activation[:0]
}

// Cleanup discards a pass that was aborted part way, including one left
// behind by a panic, and returns every touched node to Inactive.
func (s *Scheduler) Cleanup(table *nodetable.Table) {
	s.cleanup(table)
}

func (s *Scheduler) cleanup(table *nodetable.Table) {
	// Every node whose state left Inactive is either on the stack or in the
	// activation list.
	for _, se := range s.stack {
		if e := table.Get(se.id); e != nil {
			e.Sched.State = nodetable.Inactive
		}
	}
	s.stack = s.stack[:0]
	s.releases.clear()
	s.Finish(table)
}

// Order is the activation order of the current pass, producers first. The
// slice is owned by the scheduler and valid until Finish.
func (s *Scheduler) Order() []node.ID {
	return s.activation
}

// SlotCount is the number of distinct buffer slots the current pass uses.
func (s *Scheduler) SlotCount() int {
	return s.alloc.Len()
}

// SlotSize is the largest sample count assigned to slot id in the current
// pass.
func (s *Scheduler) SlotSize(id bufalloc.SlotID) int {
	return s.alloc.Slot(id).MaxSize
}

// PeakSlots is the highest number of slots live at once in the current pass.
func (s *Scheduler) PeakSlots() int {
	return s.alloc.Peak()
}
