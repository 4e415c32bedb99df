package builder

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/ctxlog"
	"github.com/vk/framegraph/internal/graph"
	"github.com/vk/framegraph/internal/hcl"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/nodeid"
	"github.com/vk/framegraph/internal/registry"
	"github.com/vk/framegraph/internal/testutil"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

type sourceArgs struct {
	Value   float64 `hcl:"value,optional" yaml:"value"`
	Outputs int     `hcl:"outputs,optional" yaml:"outputs"`
}

type sinkArgs struct {
	Samples int `hcl:"samples,optional" yaml:"samples"`
}

// closingSink records Close calls.
type closingSink struct {
	testutil.Sink
	closed *[]string
	name   string
	err    error
}

func (c *closingSink) Close() error {
	*c.closed = append(*c.closed, c.name)
	return c.err
}

// closingSource is a closable node that takes no inputs.
type closingSource struct {
	testutil.Source
	closed *[]string
}

func (c *closingSource) Close() error {
	*c.closed = append(*c.closed, "source")
	return nil
}

type testModule struct {
	closed *[]string
}

func (m testModule) Register(r *registry.Registry) {
	r.RegisterNode("source", &registry.RegisteredNode{
		NewArgs: func() any { return &sourceArgs{Value: 1, Outputs: 1} },
		Build: func(_ context.Context, args any, _ config.Settings) (node.Node, error) {
			a := args.(*sourceArgs)
			return &testutil.Source{Outputs: a.Outputs, Value: float32(a.Value)}, nil
		},
	})
	r.RegisterNode("through", &registry.RegisteredNode{
		Inputs: registry.AtLeast(1),
		Build: func(context.Context, any, config.Settings) (node.Node, error) {
			return testutil.NewThrough(), nil
		},
	})
	r.RegisterNode("sink", &registry.RegisteredNode{
		NewArgs: func() any { return &sinkArgs{} },
		Inputs:  registry.Exactly(1),
		Build: func(_ context.Context, args any, s config.Settings) (node.Node, error) {
			samples := args.(*sinkArgs).Samples
			if samples == 0 {
				samples = s.BlockSize
			}
			return testutil.NewSink(samples), nil
		},
	})
	r.RegisterNode("closing", &registry.RegisteredNode{
		Inputs: registry.Exactly(1),
		Build: func(context.Context, any, config.Settings) (node.Node, error) {
			return &closingSink{Sink: *testutil.NewSink(8), closed: m.closed}, nil
		},
	})
	r.RegisterNode("closing_source", &registry.RegisteredNode{
		Inputs: registry.AtLeast(0),
		Build: func(context.Context, any, config.Settings) (node.Node, error) {
			return &closingSource{Source: *testutil.NewSource(1), closed: m.closed}, nil
		},
	})
}

func newModel(nodes ...*config.Node) *config.Model {
	for i, n := range nodes {
		if n.Args == nil {
			n.Args = config.NoArgs{}
		}
		if n.Origin == "" {
			n.Origin = "test:" + string(rune('1'+i))
		}
	}
	return &config.Model{Settings: config.DefaultSettings(), Nodes: nodes}
}

func TestBuild_Chain(t *testing.T) {
	// Arrange
	model := newModel(
		&config.Node{Type: "source", Name: "src"},
		&config.Node{Type: "through", Name: "fx", Inputs: []nodeid.Address{nodeid.New("src")}},
		&config.Node{Type: "sink", Name: "out", Inputs: []nodeid.Address{nodeid.NewWithOutput("fx", 0)}},
	)

	// Act
	p, err := Build(testContext(), model, registry.NewWith(testModule{}))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"src", "fx", "out"}, p.Names())

	srcID, ok := p.Node("src")
	require.True(t, ok)
	fxID, _ := p.Node("fx")
	outID, _ := p.Node("out")
	fx, ok := graph.Lookup[*testutil.Through](p.Graph, fxID)
	require.True(t, ok)
	assert.Equal(t, []node.Port{node.PortOf(srcID, 0)}, fx.Inputs)

	require.NoError(t, p.Graph.Render())
	assert.Equal(t, []node.ID{srcID, fxID, outID}, p.Graph.Order())
	sink, _ := graph.Lookup[*testutil.Sink](p.Graph, outID)
	require.Len(t, sink.Got, 1)
	assert.Len(t, sink.Got[0], config.DefaultBlockSize)
	assert.Equal(t, float32(1), sink.Got[0][0])
}

func TestBuild_FromHCL(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patch.hcl"), []byte(`
settings {
  block_size = 32
}
node "source" "pair" {
  value   = 2
  outputs = 2
}
node "sink" "left" {
  inputs = ["pair[0]"]
}
node "sink" "right" {
  inputs  = ["pair[1]"]
  samples = block_size * 2
}
`), 0o644))
	model, err := hcl.NewLoader().Load(testContext(), dir)
	require.NoError(t, err)

	p, err := Build(testContext(), model, registry.NewWith(testModule{}))
	require.NoError(t, err)

	// Both sinks read the same node with different sample counts.
	require.ErrorIs(t, p.Graph.Render(), graph.ErrSampleCountMismatch)

	rightID, _ := p.Node("right")
	right, _ := graph.Lookup[*testutil.Sink](p.Graph, rightID)
	pairID, _ := p.Node("pair")
	assert.Equal(t, []node.Port{node.PortOf(pairID, 1)}, right.Inputs)
	right.Samples = 32
	require.NoError(t, p.Graph.Render())
	assert.Equal(t, float32(2), right.Got[0][31])
}

func TestBuild_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		model       *config.Model
		errContains string
	}{
		{
			name:        "unknown type",
			model:       newModel(&config.Node{Type: "reverb", Name: "fx"}),
			errContains: `unknown type "reverb"`,
		},
		{
			name: "too few inputs",
			model: newModel(
				&config.Node{Type: "sink", Name: "out"},
			),
			errContains: "wants exactly 1 inputs, got 0",
		},
		{
			name: "inputs on a source",
			model: newModel(
				&config.Node{Type: "source", Name: "a"},
				&config.Node{Type: "source", Name: "b", Inputs: []nodeid.Address{nodeid.New("a")}},
			),
			errContains: "wants exactly 0 inputs, got 1",
		},
		{
			name: "output out of range",
			model: newModel(
				&config.Node{Type: "source", Name: "src"},
				&config.Node{Type: "sink", Name: "out", Inputs: []nodeid.Address{nodeid.NewWithOutput("src", 1)}},
			),
			errContains: `"src" has 1 outputs`,
		},
		{
			name: "reading a sink",
			model: newModel(
				&config.Node{Type: "source", Name: "src"},
				&config.Node{Type: "sink", Name: "a", Inputs: []nodeid.Address{nodeid.New("src")}},
				&config.Node{Type: "sink", Name: "b", Inputs: []nodeid.Address{nodeid.New("a")}},
			),
			errContains: `"a" has 0 outputs`,
		},
		{
			name: "undefined input",
			model: newModel(
				&config.Node{Type: "sink", Name: "out", Inputs: []nodeid.Address{nodeid.New("ghost")}},
			),
			errContains: "invalid patch",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(testContext(), tc.model, registry.NewWith(testModule{}))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestBuild_FeedbackLoopSurfacesOnRender(t *testing.T) {
	model := newModel(
		&config.Node{Type: "through", Name: "a", Inputs: []nodeid.Address{nodeid.New("b")}},
		&config.Node{Type: "through", Name: "b", Inputs: []nodeid.Address{nodeid.New("a")}},
		&config.Node{Type: "sink", Name: "out", Inputs: []nodeid.Address{nodeid.New("b")}},
	)

	p, err := Build(testContext(), model, registry.NewWith(testModule{}))

	require.NoError(t, err)
	assert.ErrorIs(t, p.Graph.Render(), graph.ErrFeedbackLoop)
}

func TestPatch_CloseInReverseOrder(t *testing.T) {
	var closed []string
	model := newModel(
		&config.Node{Type: "source", Name: "src"},
		&config.Node{Type: "closing", Name: "first", Inputs: []nodeid.Address{nodeid.New("src")}},
		&config.Node{Type: "closing", Name: "second", Inputs: []nodeid.Address{nodeid.New("src")}},
	)
	p, err := Build(testContext(), model, registry.NewWith(testModule{closed: &closed}))
	require.NoError(t, err)

	for _, name := range []string{"first", "second"} {
		id, _ := p.Node(name)
		c, ok := graph.Lookup[*closingSink](p.Graph, id)
		require.True(t, ok)
		c.name = name
	}
	id, _ := p.Node("first")
	first, _ := graph.Lookup[*closingSink](p.Graph, id)
	first.err = errors.New("flush failed")

	err = p.Close()

	assert.Equal(t, []string{"second", "first"}, closed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `node "first": flush failed`)
}

func TestBuild_RejectedNodeIsClosed(t *testing.T) {
	var closed []string
	model := newModel(
		&config.Node{Type: "source", Name: "src"},
		&config.Node{Type: "closing_source", Name: "tap", Inputs: []nodeid.Address{nodeid.New("src")}},
	)

	p, err := Build(testContext(), model, registry.NewWith(testModule{closed: &closed}))

	require.Error(t, err)
	assert.Nil(t, p)
	assert.Contains(t, err.Error(), `node "tap" of type "closing_source" does not accept inputs`)
	assert.Equal(t, []string{"source"}, closed)
}
