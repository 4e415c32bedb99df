// Package buffer holds the sample storage shared between nodes during a frame.
//
// Each Buffer is guarded by its own RWMutex. The producing node holds the
// exclusive lock while it renders; consumers hold the shared lock through a
// ReadHandle. A buffer whose producer reported silence is left InactiveDirty
// and is only zero-filled when a consumer actually asks for its samples.
package buffer

import "sync"

// Liveness describes what the content of a Buffer means for the current frame.
type Liveness int

const (
	// InactiveDirty means the buffer is logically silent but has not been
	// zero-filled yet. Readers never observe this state.
	InactiveDirty Liveness = iota
	// Inactive means the buffer has been zero-filled.
	Inactive
	// Active means the buffer holds samples written this frame.
	Active
)

func (l Liveness) String() string {
	switch l {
	case InactiveDirty:
		return "InactiveDirty"
	case Inactive:
		return "Inactive"
	case Active:
		return "Active"
	default:
		return "Unknown"
	}
}

// Buffer is a growable sequence of samples plus its liveness flag.
type Buffer struct {
	mu       sync.RWMutex
	data     []float32
	liveness Liveness
}

// Reserve grows the backing array so that at least size samples fit without
// reallocating during a frame. Existing content is not preserved.
func (b *Buffer) Reserve(size int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if cap(b.data) < size {
		b.data = make([]float32, len(b.data), size)
	}
}

// Cap reports the capacity of the backing array.
func (b *Buffer) Cap() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cap(b.data)
}

// Liveness reports the current liveness under the shared lock.
func (b *Buffer) Liveness() Liveness {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.liveness
}

// Acquire takes the exclusive lock, sizes the buffer to n samples and marks
// it Active. The returned WriteLease must be released once the producer is
// done.
func (b *Buffer) Acquire(n int) WriteLease {
	b.mu.Lock()
	if cap(b.data) < n {
		b.data = make([]float32, n)
	} else {
		b.data = b.data[:n]
	}
	b.liveness = Active
	return WriteLease{b: b}
}

// WriteLease is exclusive access to a Buffer held by its producer.
type WriteLease struct {
	b *Buffer
}

// Samples returns the writable sample slice.
func (w WriteLease) Samples() []float32 {
	return w.b.data
}

// Release records whether the producer wrote meaningful samples and drops
// the exclusive lock.
func (w WriteLease) Release(active bool) {
	if active {
		w.b.liveness = Active
	} else {
		w.b.liveness = InactiveDirty
	}
	w.b.mu.Unlock()
}

// zeroFill promotes the shared lock to exclusive, clears a dirty buffer and
// returns holding the shared lock again. The promotion is not atomic: another
// writer could interleave between RUnlock and Lock, so the state is checked
// again under the exclusive lock.
func (b *Buffer) zeroFill() {
	b.mu.RUnlock()
	b.mu.Lock()
	if b.liveness == InactiveDirty {
		clear(b.data)
		b.liveness = Inactive
	}
	b.mu.Unlock()
	b.mu.RLock()
}
