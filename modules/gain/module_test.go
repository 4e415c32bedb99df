package gain

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

func TestRender(t *testing.T) {
	testCases := []struct {
		name       string
		source     *testutil.Source
		gain       float64
		wantActive bool
		wantValue  float32
	}{
		{name: "scales", source: testutil.NewSource(2), gain: 0.5, wantActive: true, wantValue: 1},
		{name: "inverts", source: testutil.NewSource(2), gain: -1, wantActive: true, wantValue: -2},
		{name: "silent input", source: &testutil.Source{Outputs: 1, Silent: true}, gain: 2},
		{name: "zero gain", source: testutil.NewSource(2), gain: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := graph.New()
			src := g.Insert(tc.source)
			id := g.Insert(New(node.PortOf(src, 0), tc.gain))
			sink := testutil.NewSink(16, node.PortOf(id, 0))
			g.Insert(sink)

			require.NoError(t, g.Render())

			assert.Equal(t, []bool{tc.wantActive}, sink.Active)
			assert.Equal(t, tc.wantValue, sink.Got[0][15])
		})
	}
}

func TestRegister(t *testing.T) {
	rn, ok := registry.NewWith(&Module{}).Lookup("gain")
	require.True(t, ok)
	assert.Equal(t, registry.Exactly(1), rn.Inputs)

	n, err := rn.New(testutil.Context(), config.NoArgs{}, config.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, float32(1), n.(*Node).gain)

	src := node.PortOf(node.NewID(4, 1), 0)
	require.NoError(t, n.(registry.Connector).Connect([]node.Port{src}))
	assert.Equal(t, src, n.(*Node).input)
}
