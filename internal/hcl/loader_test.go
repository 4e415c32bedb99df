package hcl

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/ctxlog"
	"github.com/vk/framegraph/internal/nodeid"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func writePatch(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

type oscArgs struct {
	Frequency float64 `hcl:"frequency,optional"`
	Amplitude float64 `hcl:"amplitude,optional"`
}

func TestLoad_Patch(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	writePatch(t, dir, "patch.hcl", `
settings {
  sample_rate = 32000
  block_size  = 128
}

node "sine" "osc" {
  frequency = sample_rate / 100
}

node "gain" "amp" {
  inputs = ["osc"]
  gain   = 0.5
}

node "output" "out" {
  inputs = ["amp[0]"]
}
`)

	// Act
	model, err := NewLoader().Load(testContext(), dir)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, config.Settings{SampleRate: 32000, BlockSize: 128}, model.Settings)
	require.Len(t, model.Nodes, 3)
	require.NoError(t, model.Validate())

	osc := model.Nodes[0]
	assert.Equal(t, "sine", osc.Type)
	assert.Equal(t, "osc", osc.Name)
	assert.Empty(t, osc.Inputs)
	assert.Contains(t, osc.Origin, "patch.hcl:7,")

	args := oscArgs{Amplitude: 1}
	require.NoError(t, osc.Args.Decode(&args))
	assert.Equal(t, 320.0, args.Frequency)
	assert.Equal(t, 1.0, args.Amplitude, "absent attributes keep their default")

	out, ok := model.Find("out")
	require.True(t, ok)
	assert.Equal(t, []nodeid.Address{nodeid.NewWithOutput("amp", 0)}, out.Inputs)
}

func TestLoad_DefaultsAndFunctions(t *testing.T) {
	dir := t.TempDir()
	path := writePatch(t, dir, "only.hcl", `
node "sine" "osc" {
  frequency = max(block_size, 1000)
  amplitude = abs(-0.25)
}
`)

	model, err := NewLoader().Load(testContext(), path)

	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), model.Settings)
	var args oscArgs
	require.NoError(t, model.Nodes[0].Args.Decode(&args))
	assert.Equal(t, 1000.0, args.Frequency)
	assert.Equal(t, 0.25, args.Amplitude)
}

func TestLoad_MergesFiles(t *testing.T) {
	dir := t.TempDir()
	writePatch(t, dir, "a.hcl", `node "sine" "osc" {}`)
	writePatch(t, dir, "b.hcl", `
settings {
  block_size = 64
}
node "output" "out" {
  inputs = ["osc"]
}
`)

	model, err := NewLoader().Load(testContext(), dir)

	require.NoError(t, err)
	assert.Equal(t, 64, model.Settings.BlockSize)
	assert.Equal(t, config.DefaultSampleRate, model.Settings.SampleRate)
	require.Len(t, model.Nodes, 2)
	assert.Equal(t, "osc", model.Nodes[0].Name)
	assert.Equal(t, "out", model.Nodes[1].Name)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		files       map[string]string
		errContains string
	}{
		{
			name:        "syntax error",
			files:       map[string]string{"bad.hcl": `node "sine" {`},
			errContains: "failed to parse HCL file",
		},
		{
			name:        "missing label",
			files:       map[string]string{"bad.hcl": `node "sine" {}`},
			errContains: "failed to decode HCL file",
		},
		{
			name:        "unknown top level block",
			files:       map[string]string{"bad.hcl": `step "x" "y" {}`},
			errContains: "failed to decode HCL file",
		},
		{
			name: "settings twice",
			files: map[string]string{
				"a.hcl": "settings {\n  block_size = 64\n}\n",
				"b.hcl": "settings {\n  block_size = 32\n}\n",
			},
			errContains: "settings declared in both",
		},
		{
			name:        "bad input reference",
			files:       map[string]string{"bad.hcl": "node \"output\" \"out\" {\n  inputs = [\"a.b\"]\n}\n"},
			errContains: `node "out"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tc.files {
				writePatch(t, dir, name, content)
			}

			_, err := NewLoader().Load(testContext(), dir)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestArgs_Decode(t *testing.T) {
	dir := t.TempDir()
	writePatch(t, dir, "patch.hcl", `
node "sine" "osc" {
  frequency = 440
  detune    = 3
}
node "sine" "typo" {
  frequency = "fast"
}
`)
	model, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)

	var args oscArgs
	err = model.Nodes[0].Args.Decode(&args)
	require.Error(t, err, "unknown attributes are rejected")
	assert.Contains(t, err.Error(), "detune")

	err = model.Nodes[1].Args.Decode(&args)
	require.Error(t, err, "wrong type is rejected")
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	writePatch(t, dir, "patch.hcl", `
settings {
  sample_rate = 32000
  block_size  = 128
}
node "sine" "osc" {
  frequency = sample_rate / 100
}
`)

	model, err := NewLoader(WithOverrides(config.Settings{SampleRate: 44100})).Load(testContext(), dir)

	require.NoError(t, err)
	assert.Equal(t, config.Settings{SampleRate: 44100, BlockSize: 128}, model.Settings)
	var args oscArgs
	require.NoError(t, model.Nodes[0].Args.Decode(&args))
	assert.Equal(t, 441.0, args.Frequency, "expressions see the overridden sample rate")
}
