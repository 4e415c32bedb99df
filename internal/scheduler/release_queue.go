package scheduler

import "github.com/vk/framegraph/internal/bufalloc"

type release struct {
	lastUse int
	slot    bufalloc.SlotID
}

// releaseQueue is a binary min-heap on lastUse. It is typed rather than built
// on container/heap so pushes do not box entries into interfaces on every
// frame.
type releaseQueue []release

func (q releaseQueue) Len() int { return len(q) }

func (q *releaseQueue) push(r release) {
	*q = append(*q, r)
	h := *q
	i := len(h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if h[parent].lastUse <= h[i].lastUse {
			break
		}
		h[parent], h[i] = h[i], h[parent]
		i = parent
	}
}

// peek returns the entry with the smallest lastUse. The queue must not be
// empty.
func (q releaseQueue) peek() release {
	return q[0]
}

func (q *releaseQueue) pop() release {
	h := *q
	top := h[0]
	last := len(h) - 1
	h[0] = h[last]
	h = h[:last]
	i := 0
	for {
		smallest := i
		l, r := 2*i+1, 2*i+2
		if l < len(h) && h[l].lastUse < h[smallest].lastUse {
			smallest = l
		}
		if r < len(h) && h[r].lastUse < h[smallest].lastUse {
			smallest = r
		}
		if smallest == i {
			break
		}
		h[i], h[smallest] = h[smallest], h[i]
		i = smallest
	}
	*q = h
	return top
}

func (q *releaseQueue) clear() {
	*q = (*q)[:0]
}
