package node

// StreamReader reads a fixed set of input ports as one multi-channel stream
// within a frame. Begin rewinds the cursor to the start of the frame, and
// each Read or Skip advances it, so a node can consume its inputs in chunks
// of any size. Channels whose port is not available this frame read as
// silence.
type StreamReader struct {
	sources []Port
	rc      RenderContext
	pos     int
}

// NewStreamReader returns a reader with one channel per source.
func NewStreamReader(sources ...Port) *StreamReader {
	return &StreamReader{sources: sources}
}

// Channels is the number of channels.
func (r *StreamReader) Channels() int { return len(r.sources) }

// SetSources replaces the channel sources. It takes effect at the next
// Begin.
func (r *StreamReader) SetSources(sources []Port) {
	r.sources = sources
}

// Begin starts reading the current frame through rc.
func (r *StreamReader) Begin(rc RenderContext) {
	r.rc = rc
	r.pos = 0
}

// End detaches the reader from the frame. Reading before the next Begin
// panics.
func (r *StreamReader) End() {
	r.rc = nil
}

// Position is the number of samples consumed since Begin.
func (r *StreamReader) Position() int { return r.pos }

// Read copies the next len(dst[0]) samples of every channel into dst, one
// slice per channel, and advances the cursor. Reading past the end of the
// frame panics.
func (r *StreamReader) Read(dst [][]float32) {
	rc := r.context()
	if len(dst) != len(r.sources) {
		panic("node: stream channel count mismatch")
	}
	if len(dst) == 0 {
		return
	}
	n := len(dst[0])
	for i, src := range r.sources {
		h, ok := rc.Input(src)
		if !ok {
			clear(dst[i][:n])
			continue
		}
		copy(dst[i][:n], h.Samples()[r.pos:r.pos+n])
	}
	r.pos += n
}

// Skip advances the cursor by n samples without reading.
func (r *StreamReader) Skip(n int) {
	r.context()
	r.pos += n
}

// IsActive reports whether any channel carries non-silent samples this
// frame. It never forces a silent input to be filled.
func (r *StreamReader) IsActive() bool {
	rc := r.context()
	for _, src := range r.sources {
		if h, ok := rc.Input(src); ok && h.IsActive() {
			return true
		}
	}
	return false
}

func (r *StreamReader) context() RenderContext {
	if r.rc == nil {
		panic("node: stream read outside Begin/End")
	}
	return r.rc
}
