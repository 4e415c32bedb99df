package config

import (
	"fmt"

	"github.com/vk/framegraph/internal/nodeid"
)

// Default settings used when a patch has no settings of its own.
const (
	DefaultSampleRate = 48000
	DefaultBlockSize  = 256
)

// Model is the unified, format-agnostic representation of a patch.
type Model struct {
	Settings Settings
	Nodes    []*Node
}

// Settings are the patch-wide rendering parameters.
type Settings struct {
	SampleRate int
	BlockSize  int
}

// DefaultSettings returns the settings used when a patch omits them.
func DefaultSettings() Settings {
	return Settings{SampleRate: DefaultSampleRate, BlockSize: DefaultBlockSize}
}

// Override returns s with every non-zero field of o applied on top.
func (s Settings) Override(o Settings) Settings {
	if o.SampleRate != 0 {
		s.SampleRate = o.SampleRate
	}
	if o.BlockSize != 0 {
		s.BlockSize = o.BlockSize
	}
	return s
}

// Validate checks that the settings describe a renderable stream.
func (s Settings) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", s.SampleRate)
	}
	if s.BlockSize <= 0 {
		return fmt.Errorf("block_size must be positive, got %d", s.BlockSize)
	}
	return nil
}

// Node is one `node` entry of a patch.
type Node struct {
	Type   string
	Name   string
	Inputs []nodeid.Address
	Args   Args
	// Origin is a human readable location, e.g. `patch.hcl:12,1`.
	Origin string
}

// Find returns the node called name.
func (m *Model) Find(name string) (*Node, bool) {
	for _, n := range m.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// Validate checks that node names are well formed and unique and that every
// input refers to a node of the patch.
func (m *Model) Validate() error {
	if err := m.Settings.Validate(); err != nil {
		return err
	}

	seen := make(map[string]*Node, len(m.Nodes))
	for _, n := range m.Nodes {
		if err := nodeid.ValidateName(n.Name); err != nil {
			return fmt.Errorf("%s: %w", n.Origin, err)
		}
		if n.Type == "" {
			return fmt.Errorf("%s: node %q has no type", n.Origin, n.Name)
		}
		if prev, ok := seen[n.Name]; ok {
			return fmt.Errorf("%s: node %q already defined at %s", n.Origin, n.Name, prev.Origin)
		}
		seen[n.Name] = n
	}

	for _, n := range m.Nodes {
		for _, in := range n.Inputs {
			if _, ok := seen[in.Name]; !ok {
				return fmt.Errorf("%s: node %q reads %s, which is not defined", n.Origin, n.Name, in)
			}
		}
	}
	return nil
}
