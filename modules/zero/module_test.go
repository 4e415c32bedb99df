package zero

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/graph"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/registry"
	"github.com/vk/framegraph/internal/testutil"
)

func TestRender_IsSilent(t *testing.T) {
	g := graph.New()
	id := g.Insert(New(2))
	sink := testutil.NewSink(32, node.PortOf(id, 0), node.PortOf(id, 1))
	g.Insert(sink)

	require.NoError(t, g.Render())

	assert.Equal(t, []bool{false, false}, sink.Active)
	assert.Equal(t, [][]float32{make([]float32, 32), make([]float32, 32)}, sink.Got)
}

func TestRegister(t *testing.T) {
	rn, ok := registry.NewWith(&Module{}).Lookup("zero")
	require.True(t, ok)

	n, err := rn.New(testutil.Context(), config.NoArgs{}, config.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, 1, n.NumOutputs())

	_, err = rn.Build(testutil.Context(), &Args{Outputs: 0}, config.DefaultSettings())
	assert.ErrorContains(t, err, "outputs must be at least 1")
}
