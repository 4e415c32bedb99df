package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/ctxlog"
	"github.com/vk/framegraph/internal/fsutil"
	"github.com/vk/framegraph/internal/nodeid"
	"github.com/vk/framegraph/internal/schema"
)

// Extension is the file extension of HCL patches.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	overrides config.Settings
}

// Option configures a Loader.
type Option func(*Loader)

// WithOverrides replaces file settings with the non-zero fields of s. Node
// expressions see the overridden values.
func WithOverrides(s config.Settings) Option {
	return func(l *Loader) {
		l.overrides = s
	}
}

// NewLoader creates a new HCL patch loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ config.Loader = (*Loader)(nil)

type decodedFile struct {
	path string
	root schema.File
}

// Load parses every .hcl file under paths and merges them into one model.
// Settings may be declared in at most one file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	decoded := make([]decodedFile, 0, len(files))
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.File
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		decoded = append(decoded, decodedFile{path: file, root: root})
	}

	model := &config.Model{}
	model.Settings, err = mergeSettings(decoded)
	if err != nil {
		return nil, err
	}
	model.Settings = model.Settings.Override(l.overrides)

	evalCtx, err := newEvalContext(model.Settings)
	if err != nil {
		return nil, err
	}

	for _, f := range decoded {
		for _, n := range f.root.Nodes {
			node, err := translateNode(n, evalCtx)
			if err != nil {
				return nil, err
			}
			model.Nodes = append(model.Nodes, node)
		}
	}

	logger.Debug("HCL loading complete.", "nodes", len(model.Nodes), "sample_rate", model.Settings.SampleRate, "block_size", model.Settings.BlockSize)
	return model, nil
}

func mergeSettings(files []decodedFile) (config.Settings, error) {
	settings := config.DefaultSettings()
	var from string
	for _, f := range files {
		for _, s := range f.root.Settings {
			if from != "" {
				return settings, fmt.Errorf("settings declared in both %s and %s", from, f.path)
			}
			from = f.path
			if s.SampleRate != nil {
				settings.SampleRate = *s.SampleRate
			}
			if s.BlockSize != nil {
				settings.BlockSize = *s.BlockSize
			}
		}
	}
	return settings, nil
}

// translateNode converts the HCL-specific node schema into the agnostic model.
func translateNode(n *schema.Node, evalCtx *hcl.EvalContext) (*config.Node, error) {
	origin := formatRange(n.Args.MissingItemRange())
	inputs, err := nodeid.ParseAll(n.Inputs)
	if err != nil {
		return nil, fmt.Errorf("%s: node %q: %w", origin, n.Name, err)
	}
	return &config.Node{
		Type:   n.Type,
		Name:   n.Name,
		Inputs: inputs,
		Args:   &bodyArgs{body: n.Args, evalCtx: evalCtx},
		Origin: origin,
	}, nil
}

func formatRange(r hcl.Range) string {
	return fmt.Sprintf("%s:%d,%d", r.Filename, r.Start.Line, r.Start.Column)
}
