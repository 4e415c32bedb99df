// Package yamlcfg provides the YAML implementation of config.Loader.
//
// A YAML patch holds an optional `settings` mapping and a `nodes` sequence:
//
//	settings:
//	  sample_rate: 48000
//	  block_size: 256
//	nodes:
//	  - type: sine
//	    name: osc
//	    args:
//	      frequency: 440
//	  - type: output
//	    name: out
//	    inputs: [osc]
//
// Node arguments are decoded by the node type with `yaml` struct tags.
package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/ctxlog"
	"github.com/vk/framegraph/internal/fsutil"
	"github.com/vk/framegraph/internal/nodeid"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions of YAML patches.
var Extensions = []string{".yaml", ".yml"}

type fileRoot struct {
	Settings *settings   `yaml:"settings"`
	Nodes    []yaml.Node `yaml:"nodes"`
}

type settings struct {
	SampleRate *int `yaml:"sample_rate"`
	BlockSize  *int `yaml:"block_size"`
}

type nodeEntry struct {
	Type   string    `yaml:"type"`
	Name   string    `yaml:"name"`
	Inputs []string  `yaml:"inputs"`
	Args   yaml.Node `yaml:"args"`
}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct {
	overrides config.Settings
}

// Option configures a Loader.
type Option func(*Loader)

// WithOverrides replaces file settings with the non-zero fields of s.
func WithOverrides(s config.Settings) Option {
	return func(l *Loader) {
		l.overrides = s
	}
}

// NewLoader creates a new YAML patch loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ config.Loader = (*Loader)(nil)

// Load parses every YAML file under paths and merges them into one model.
// Settings may be declared in at most one file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{Settings: config.DefaultSettings()}
	var settingsFrom string
	for _, file := range files {
		root, err := decodeFile(file)
		if err != nil {
			return nil, err
		}

		if root.Settings != nil {
			if settingsFrom != "" {
				return nil, fmt.Errorf("settings declared in both %s and %s", settingsFrom, file)
			}
			settingsFrom = file
			if root.Settings.SampleRate != nil {
				model.Settings.SampleRate = *root.Settings.SampleRate
			}
			if root.Settings.BlockSize != nil {
				model.Settings.BlockSize = *root.Settings.BlockSize
			}
		}

		for i := range root.Nodes {
			n, err := translateNode(file, &root.Nodes[i])
			if err != nil {
				return nil, err
			}
			model.Nodes = append(model.Nodes, n)
		}
	}
	model.Settings = model.Settings.Override(l.overrides)

	logger.Debug("YAML loading complete.", "nodes", len(model.Nodes), "sample_rate", model.Settings.SampleRate, "block_size", model.Settings.BlockSize)
	return model, nil
}

func decodeFile(path string) (*fileRoot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}
	return &root, nil
}

func translateNode(file string, raw *yaml.Node) (*config.Node, error) {
	origin := fmt.Sprintf("%s:%d,%d", file, raw.Line, raw.Column)

	var entry nodeEntry
	if err := decodeStrict(raw, &entry); err != nil {
		return nil, fmt.Errorf("%s: %w", origin, err)
	}
	inputs, err := nodeid.ParseAll(entry.Inputs)
	if err != nil {
		return nil, fmt.Errorf("%s: node %q: %w", origin, entry.Name, err)
	}

	var args config.Args = config.NoArgs{}
	if entry.Args.Kind != 0 {
		args = &nodeArgs{node: entry.Args}
	}
	return &config.Node{
		Type:   entry.Type,
		Name:   entry.Name,
		Inputs: inputs,
		Args:   args,
		Origin: origin,
	}, nil
}

// nodeArgs implements config.Args over a node's `args` mapping.
type nodeArgs struct {
	node yaml.Node
}

func (a *nodeArgs) Decode(target any) error {
	if err := decodeStrict(&a.node, target); err != nil {
		return fmt.Errorf("invalid node arguments: %w", err)
	}
	return nil
}

// decodeStrict decodes n into target, rejecting keys target has no field
// for. yaml.Node.Decode has no strict mode, so the node is re-encoded and run
// through a Decoder.
func decodeStrict(n *yaml.Node, target any) error {
	data, err := yaml.Marshal(n)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(target)
}
