// Package schema holds the gohcl decoding targets for HCL patch files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Settings represents the `settings` block. Unset attributes fall back to
// the defaults of package config.
type Settings struct {
	SampleRate *int `hcl:"sample_rate,optional"`
	BlockSize  *int `hcl:"block_size,optional"`
}

// Node represents a `node "type" "name"` block. Every attribute other than
// inputs belongs to the node type and is kept unevaluated in Args.
type Node struct {
	Type   string   `hcl:"type,label"`
	Name   string   `hcl:"name,label"`
	Inputs []string `hcl:"inputs,optional"`
	Args   hcl.Body `hcl:",remain"`
}

// File represents the top-level structure of a patch file.
type File struct {
	Settings []*Settings `hcl:"settings,block"`
	Nodes    []*Node     `hcl:"node,block"`
}
