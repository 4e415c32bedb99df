package buffer

// ReadHandle is shared access to an upstream node's output buffer.
//
// A handle holds the buffer's read lock from Open until Release. Handles are
// reused across frames by the engine, so callers must not keep them past the
// Render call that obtained them.
type ReadHandle struct {
	b    *Buffer
	held bool
}

// Open binds the handle to b and takes the shared lock.
func (h *ReadHandle) Open(b *Buffer) {
	b.mu.RLock()
	h.b = b
	h.held = true
}

// Held reports whether the handle currently holds a shared lock.
func (h *ReadHandle) Held() bool {
	return h.held
}

// IsActive reports whether the input carries non-silent samples this frame.
// It never triggers the deferred zero fill.
func (h *ReadHandle) IsActive() bool {
	return h.b.liveness == Active
}

// Samples returns the input samples. If the producer reported silence and the
// buffer has not been cleared yet, it is zero-filled first.
func (h *ReadHandle) Samples() []float32 {
	if h.b.liveness == InactiveDirty {
		h.b.zeroFill()
	}
	return h.b.data
}

// Release drops the shared lock. Calling it more than once is a no-op.
func (h *ReadHandle) Release() {
	if !h.held {
		return
	}
	h.held = false
	h.b.mu.RUnlock()
	h.b = nil
}
