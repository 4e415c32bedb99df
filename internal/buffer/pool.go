package buffer

// Pool is the physical storage behind allocator slots, indexed by slot id.
// Buffers are never shrunk or dropped so that storage is reused across frames.
type Pool struct {
	buffers []*Buffer
}

// Ensure makes sure the pool has at least n buffers.
func (p *Pool) Ensure(n int) {
	for len(p.buffers) < n {
		p.buffers = append(p.buffers, &Buffer{})
	}
}

// Get returns the buffer for slot i.
func (p *Pool) Get(i int) *Buffer {
	return p.buffers[i]
}

// Len reports the number of physical buffers.
func (p *Pool) Len() int {
	return len(p.buffers)
}
