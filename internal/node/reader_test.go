package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegraph/internal/buffer"
	"github.com/vk/framegraph/internal/graph"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/testutil"
)

// ramp writes 0, 1, 2, ... into its output every frame.
type ramp struct{}

func (ramp) NumOutputs() int        { return 1 }
func (ramp) Inspect(node.Inspector) {}
func (ramp) Render(outputs [][]float32, _ node.RenderContext) bool {
	for i := range outputs[0] {
		outputs[0][i] = float32(i)
	}
	return true
}

// chunkSink skips one sample, then reads its inputs chunk samples at a time.
type chunkSink struct {
	inputs  []node.Port
	reader  *node.StreamReader
	samples int
	chunk   int

	active bool
	got    [][]float32
}

func (c *chunkSink) NumOutputs() int { return 0 }

func (c *chunkSink) Inspect(in node.Inspector) {
	for _, p := range c.inputs {
		in.DeclareInput(p).NumSamples(c.samples).Finish()
	}
}

func (c *chunkSink) Render(_ [][]float32, rc node.RenderContext) bool {
	c.reader.Begin(rc)
	defer c.reader.End()

	c.active = c.reader.IsActive()
	c.got = make([][]float32, c.reader.Channels())
	buf := make([][]float32, c.reader.Channels())
	for i := range buf {
		buf[i] = make([]float32, c.chunk)
	}
	c.reader.Skip(1)
	for c.reader.Position()+c.chunk <= c.samples {
		c.reader.Read(buf)
		for i := range buf {
			c.got[i] = append(c.got[i], buf[i]...)
		}
	}
	return false
}

func TestStreamReader_ReadsInChunks(t *testing.T) {
	// Arrange
	g := graph.New()
	src := g.Insert(ramp{})
	silent := g.Insert(&testutil.Source{Outputs: 1, Silent: true})
	gone := g.Insert(testutil.NewSource(1))
	g.Remove(gone)
	sources := []node.Port{node.PortOf(src, 0), node.PortOf(silent, 0), node.PortOf(gone, 0)}
	sink := &chunkSink{inputs: sources[:2], reader: node.NewStreamReader(sources...), samples: 10, chunk: 3}
	g.Insert(sink)

	for frame := 0; frame < 2; frame++ {
		// Act
		require.NoError(t, g.Render())

		// Assert
		assert.True(t, sink.active)
		require.Len(t, sink.got, 3)
		assert.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, sink.got[0], "frame %d", frame)
		assert.Equal(t, make([]float32, 9), sink.got[1], "silent input reads as zeros")
		assert.Equal(t, make([]float32, 9), sink.got[2], "missing input reads as zeros")
	}
}

type noInputs struct{}

func (noInputs) Input(node.Port) (*buffer.ReadHandle, bool) { return nil, false }

func TestStreamReader_Misuse(t *testing.T) {
	r := node.NewStreamReader(node.Port{})

	assert.PanicsWithValue(t, "node: stream read outside Begin/End", func() {
		r.Read([][]float32{make([]float32, 4)})
	})

	r.Begin(noInputs{})
	assert.False(t, r.IsActive())
	assert.PanicsWithValue(t, "node: stream channel count mismatch", func() {
		r.Read([][]float32{make([]float32, 4), make([]float32, 4)})
	})
	r.End()
	assert.Panics(t, func() { r.Skip(1) })
}
