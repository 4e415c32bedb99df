package engine

import (
	"github.com/vk/framegraph/internal/bufalloc"
	"github.com/vk/framegraph/internal/buffer"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/nodetable"
)

// scratchCap is the initial capacity of the per-node output and handle
// lists. Nodes with more outputs or inputs still work; the lists just grow.
const scratchCap = 64

// Plan is the part of a finished schedule pass the engine needs.
type Plan interface {
	Order() []node.ID
	SlotCount() int
	SlotSize(id bufalloc.SlotID) int
}

// Engine owns the physical buffers and the scratch space reused by every
// frame.
type Engine struct {
	pool    buffer.Pool
	outputs [][]float32
	leases  []buffer.WriteLease
	rc      renderContext
}

// New returns an Engine with empty storage.
func New() *Engine {
	e := &Engine{
		outputs: make([][]float32, 0, scratchCap),
		leases:  make([]buffer.WriteLease, 0, scratchCap),
	}
	e.rc.pool = &e.pool
	e.rc.handles = make([]*buffer.ReadHandle, 0, scratchCap)
	e.rc.bufs = make([]*buffer.Buffer, 0, scratchCap)
	return e
}

// Execute renders every node of plan in order. A panic raised by a node
// propagates to the caller after the node's locks have been released.
func (e *Engine) Execute(table *nodetable.Table, plan Plan) {
	n := plan.SlotCount()
	e.pool.Ensure(n)
	for i := 0; i < n; i++ {
		e.pool.Get(i).Reserve(plan.SlotSize(bufalloc.SlotID(i)))
	}

	e.rc.table = table
	for pos, id := range plan.Order() {
		e.renderNode(table.Get(id), pos)
	}
	e.rc.table = nil
}

// Buffer exposes the physical buffer behind a slot. It is meant for
// inspection between frames.
func (e *Engine) Buffer(slot bufalloc.SlotID) *buffer.Buffer {
	return e.pool.Get(int(slot))
}

// BufferCount reports how many physical buffers the engine holds.
func (e *Engine) BufferCount() int {
	return e.pool.Len()
}

func (e *Engine) renderNode(entry *nodetable.Entry, pos int) {
	si := &entry.Sched
	e.outputs = e.outputs[:0]
	e.leases = e.leases[:0]
	for _, out := range si.Outputs {
		lease := e.pool.Get(int(out.Slot)).Acquire(si.NumOutputSamples)
		e.leases = append(e.leases, lease)
		e.outputs = append(e.outputs, lease.Samples())
	}

	active := false
	defer func() {
		e.rc.releaseAll()
		for _, lease := range e.leases {
			lease.Release(active)
		}
	}()

	e.rc.pos = pos
	active = entry.Node.Render(e.outputs, &e.rc)
}
