package mixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegraph/internal/graph"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/testutil"
)

func buildMix(t *testing.T, gains []float64, sources ...*testutil.Source) *testutil.Sink {
	t.Helper()
	g := graph.New()
	var ports []node.Port
	for _, s := range sources {
		ports = append(ports, node.PortOf(g.Insert(s), 0))
	}
	mix := New(gains)
	require.NoError(t, mix.Connect(ports))
	id := g.Insert(mix)
	sink := testutil.NewSink(8, node.PortOf(id, 0))
	g.Insert(sink)
	require.NoError(t, g.Render())
	return sink
}

func TestRender_WeightedSum(t *testing.T) {
	sink := buildMix(t, []float64{1, 0.5}, testutil.NewSource(1), testutil.NewSource(2))

	assert.Equal(t, []bool{true}, sink.Active)
	assert.Equal(t, float32(2), sink.Got[0][0])
}

func TestRender_DefaultsToUnityGain(t *testing.T) {
	sink := buildMix(t, nil, testutil.NewSource(1), testutil.NewSource(2), testutil.NewSource(3))

	assert.Equal(t, float32(6), sink.Got[0][7])
}

func TestRender_SkipsSilentInputs(t *testing.T) {
	silent := &testutil.Source{Outputs: 1, Silent: true}

	sink := buildMix(t, nil, silent, testutil.NewSource(0.25))
	assert.Equal(t, []bool{true}, sink.Active)
	assert.Equal(t, float32(0.25), sink.Got[0][0])

	sink = buildMix(t, nil, silent, &testutil.Source{Outputs: 1, Silent: true})
	assert.Equal(t, []bool{false}, sink.Active)
}

func TestRender_SameInputTwice(t *testing.T) {
	g := graph.New()
	src := node.PortOf(g.Insert(testutil.NewSource(1)), 0)
	mix := New(nil)
	require.NoError(t, mix.Connect([]node.Port{src, src}))
	sink := testutil.NewSink(4, node.PortOf(g.Insert(mix), 0))
	g.Insert(sink)

	require.NoError(t, g.Render())

	assert.Equal(t, float32(2), sink.Got[0][0])
}

func TestConnect_GainCountMismatch(t *testing.T) {
	mix := New([]float64{1, 1, 1})
	err := mix.Connect([]node.Port{{}, {}})
	assert.ErrorContains(t, err, "3 gains for 2 inputs")
}
