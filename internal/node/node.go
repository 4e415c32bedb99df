// Package node defines the capability interface every processing unit in a
// graph implements, along with the identifiers used to wire nodes together.
//
// Nodes never hold references to each other. They refer to their inputs by
// Port, and declare those inputs afresh every frame from Inspect, so the
// topology may change between frames without any explicit edge bookkeeping.
package node

import (
	"fmt"

	"github.com/vk/framegraph/internal/buffer"
)

// ID identifies a node inside a graph. It stays valid from insertion until
// removal; a removed node's index may be reused, but never with the same
// generation, so stale IDs are detectably invalid.
type ID struct {
	index uint32
	gen   uint32
}

// NewID builds an ID from an arena index and generation. Only the node table
// should need this.
func NewID(index, gen uint32) ID {
	return ID{index: index, gen: gen}
}

// Index returns the arena index.
func (id ID) Index() int { return int(id.index) }

// Generation returns the arena generation.
func (id ID) Generation() uint32 { return id.gen }

func (id ID) String() string {
	return fmt.Sprintf("#%d.%d", id.index, id.gen)
}

// OutputID is a zero-based index into a node's outputs.
type OutputID int

// Port is the producing end of an edge: one output of one node.
type Port struct {
	Node   ID
	Output OutputID
}

// PortOf is shorthand for Port{Node: id, Output: out}.
func PortOf(id ID, out OutputID) Port {
	return Port{Node: id, Output: out}
}

func (p Port) String() string {
	return fmt.Sprintf("%s[%d]", p.Node, p.Output)
}

// Node is a unit of computation in a graph.
type Node interface {
	// NumOutputs is the fixed number of outputs. Nodes with zero outputs are
	// sinks and become traversal roots.
	NumOutputs() int

	// Inspect is called twice per frame, once when the scheduler enters the
	// node and once when it leaves it. Both calls must declare the same
	// inputs.
	Inspect(in Inspector)

	// Render fills outputs, one slice per output sized to the node's sample
	// count, and returns whether any output carries non-silent samples. A
	// node returning false need not write its outputs at all.
	Render(outputs [][]float32, rc RenderContext) bool
}

// RenderContext gives a rendering node read access to its inputs.
type RenderContext interface {
	// Input returns the buffer for src, or false when src is not a node
	// output scheduled in the current frame. Handles are released by the
	// engine after Render returns; releasing them earlier is allowed.
	Input(src Port) (*buffer.ReadHandle, bool)
}
