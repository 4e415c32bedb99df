package engine

import (
	"github.com/vk/framegraph/internal/bufalloc"
	"github.com/vk/framegraph/internal/buffer"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/nodetable"
)

// renderContext implements node.RenderContext for the node being rendered.
type renderContext struct {
	pool  *buffer.Pool
	table *nodetable.Table
	pos   int

	// handles[:open] are the handles opened for the current node; bufs holds
	// the buffer behind each so a buffer is never read-locked twice.
	handles []*buffer.ReadHandle
	bufs    []*buffer.Buffer
	open    int
}

var _ node.RenderContext = (*renderContext)(nil)

// Input returns a handle on src when it is an output rendered earlier in this
// frame whose slot is still live. Anything else, including a port nobody
// declared, yields false, because its slot may already belong to another
// output.
func (rc *renderContext) Input(src node.Port) (*buffer.ReadHandle, bool) {
	e := rc.table.Get(src.Node)
	if e == nil || src.Output < 0 || int(src.Output) >= len(e.Sched.Outputs) {
		return nil, false
	}
	si := &e.Sched
	out := si.Outputs[src.Output]
	if si.State != nodetable.Active || si.Position >= rc.pos || out.LastUse < rc.pos || out.Slot == bufalloc.NoSlot {
		return nil, false
	}

	b := rc.pool.Get(int(out.Slot))
	for i := 0; i < rc.open; i++ {
		if rc.bufs[i] == b {
			h := rc.handles[i]
			if !h.Held() {
				// Released early by the node; take the lock again.
				h.Open(b)
			}
			return h, true
		}
	}

	if rc.open == len(rc.handles) {
		rc.handles = append(rc.handles, &buffer.ReadHandle{})
		rc.bufs = append(rc.bufs, nil)
	}
	h := rc.handles[rc.open]
	h.Open(b)
	rc.bufs[rc.open] = b
	rc.open++
	return h, true
}

func (rc *renderContext) releaseAll() {
	for i := 0; i < rc.open; i++ {
		rc.handles[i].Release()
		rc.bufs[i] = nil
	}
	rc.open = 0
}
