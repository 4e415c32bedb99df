// Package itest drives patches end to end for the integration suites: load,
// build, render and inspect output nodes.
package itest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegraph/internal/app"
	"github.com/vk/framegraph/internal/builder"
	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/graph"
	"github.com/vk/framegraph/internal/hcl"
	"github.com/vk/framegraph/internal/registry"
	"github.com/vk/framegraph/internal/testutil"
	"github.com/vk/framegraph/internal/yamlcfg"
	"github.com/vk/framegraph/modules/output"
)

// Registry returns a registry holding every core node type.
func Registry() *registry.Registry {
	return registry.NewWith(app.CoreModules()...)
}

// Build writes files into a temporary directory, loads them with the loader
// matching their extension and builds the resulting model. The patch is
// closed when the test ends.
func Build(t *testing.T, files map[string]string, overrides config.Settings) (*builder.Patch, error) {
	t.Helper()
	dir := testutil.WriteFiles(t, files)
	ctx := testutil.Context()

	var (
		model *config.Model
		err   error
	)
	if isYAML(files) {
		model, err = yamlcfg.NewLoader(yamlcfg.WithOverrides(overrides)).Load(ctx, dir)
	} else {
		model, err = hcl.NewLoader(hcl.WithOverrides(overrides)).Load(ctx, dir)
	}
	if err != nil {
		return nil, err
	}

	p, err := builder.Build(ctx, model, Registry())
	if err != nil {
		return nil, err
	}
	t.Cleanup(func() { _ = p.Close() })
	return p, nil
}

// MustBuild is Build that fails the test on error.
func MustBuild(t *testing.T, files map[string]string) *builder.Patch {
	t.Helper()
	p, err := Build(t, files, config.Settings{})
	require.NoError(t, err)
	return p
}

func isYAML(files map[string]string) bool {
	for name := range files {
		ext := filepath.Ext(name)
		if ext == ".yaml" || ext == ".yml" {
			return true
		}
	}
	return false
}

// Render renders frames frames and fails the test on the first error.
func Render(t *testing.T, p *builder.Patch, frames int) {
	t.Helper()
	for i := 0; i < frames; i++ {
		require.NoError(t, p.Graph.Render(), "frame %d", i)
	}
}

// Output returns the output node named name.
func Output(t *testing.T, p *builder.Patch, name string) *output.Node {
	t.Helper()
	id, ok := p.Node(name)
	require.True(t, ok, "node %q not in patch", name)
	out, ok := graph.Lookup[*output.Node](p.Graph, id)
	require.True(t, ok, "node %q is not an output", name)
	return out
}

// RunResult holds the outcome of an application run.
type RunResult struct {
	Err    error
	Frames uint64
	Logs   string
}

// RunApp writes files into a temporary directory and runs the application
// on it. An empty cfg.PatchPath is replaced by that directory; a relative one
// is resolved against it.
func RunApp(t *testing.T, files map[string]string, cfg app.Config) RunResult {
	t.Helper()
	dir := testutil.WriteFiles(t, files)
	switch {
	case cfg.PatchPath == "":
		cfg.PatchPath = dir
	case !filepath.IsAbs(cfg.PatchPath):
		cfg.PatchPath = filepath.Join(dir, cfg.PatchPath)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	logs := &testutil.SafeBuffer{}
	testutil.DumpLogsOnCleanup(t, logs)
	a := app.NewApp(logs, &cfg)
	err := a.Run(context.Background())
	return RunResult{Err: err, Frames: a.Frames(), Logs: logs.String()}
}

// Lines returns the non-empty lines of s that contain substr.
func Lines(s, substr string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" && strings.Contains(line, substr) {
			out = append(out, line)
		}
	}
	return out
}
