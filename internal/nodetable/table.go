// Package nodetable is the arena that owns a graph's nodes.
//
// Entries are addressed by node.ID (index plus generation). Freed indices go
// on a free list and are reused by later inserts with a bumped generation,
// so lookups through a stale ID fail instead of reaching the new occupant.
package nodetable

import "github.com/vk/framegraph/internal/node"

// Entry is one occupied arena cell.
type Entry struct {
	Node  node.Node
	Sched SchedInfo
}

type cell struct {
	entry    Entry
	gen      uint32
	used     bool
	nextFree int
}

// Table is a generational arena of nodes. The zero value is ready to use.
type Table struct {
	cells     []cell
	firstFree int // index+1; 0 means the free list is empty
	live      int
}

// Insert stores n and returns its ID.
func (t *Table) Insert(n node.Node) node.ID {
	entry := Entry{Node: n, Sched: newSchedInfo(n.NumOutputs())}
	t.live++

	if t.firstFree != 0 {
		idx := t.firstFree - 1
		c := &t.cells[idx]
		t.firstFree = c.nextFree
		c.entry = entry
		c.used = true
		c.nextFree = 0
		return node.NewID(uint32(idx), c.gen)
	}

	t.cells = append(t.cells, cell{entry: entry, used: true})
	return node.NewID(uint32(len(t.cells)-1), 0)
}

// Remove deletes the node behind id and returns it.
func (t *Table) Remove(id node.ID) (node.Node, bool) {
	c := t.cell(id)
	if c == nil {
		return nil, false
	}
	n := c.entry.Node
	c.entry = Entry{}
	c.used = false
	c.gen++
	c.nextFree = t.firstFree
	t.firstFree = id.Index() + 1
	t.live--
	return n, true
}

// Get returns the entry behind id, or nil if id is not live.
func (t *Table) Get(id node.ID) *Entry {
	c := t.cell(id)
	if c == nil {
		return nil
	}
	return &c.entry
}

// Len reports the number of live nodes.
func (t *Table) Len() int {
	return t.live
}

// Each calls fn for every live node in index order.
func (t *Table) Each(fn func(id node.ID, e *Entry)) {
	for i := range t.cells {
		c := &t.cells[i]
		if c.used {
			fn(node.NewID(uint32(i), c.gen), &c.entry)
		}
	}
}

func (t *Table) cell(id node.ID) *cell {
	idx := id.Index()
	if idx >= len(t.cells) {
		return nil
	}
	c := &t.cells[idx]
	if !c.used || c.gen != id.Generation() {
		return nil
	}
	return c
}
