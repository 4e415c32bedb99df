package nodetable

import "github.com/vk/framegraph/internal/bufalloc"

// State tracks a node's progress through one frame's traversal.
type State int

const (
	// Inactive nodes have not been reached this frame.
	Inactive State = iota
	// Found nodes have an Enter pending on the scheduler stack.
	Found
	// Backedge nodes are being explored: entered but not yet left. Reaching
	// one again means the graph has a cycle.
	Backedge
	// Active nodes are fully scheduled for this frame.
	Active
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "Inactive"
	case Found:
		return "Found"
	case Backedge:
		return "Backedge"
	case Active:
		return "Active"
	default:
		return "Unknown"
	}
}

// NoUse marks an output that no node consumes this frame.
const NoUse = -1

// OutputInfo is the per-frame bookkeeping for one node output.
type OutputInfo struct {
	// Slot is the buffer slot assigned to the output, or bufalloc.NoSlot.
	Slot bufalloc.SlotID
	// LastUse is the activation position of the output's last consumer,
	// or NoUse.
	LastUse int
}

// SchedInfo is the scheduling metadata kept for every node. It persists
// across frames but is rebuilt by each schedule pass.
type SchedInfo struct {
	// NumOutputSamples is the sample count demanded of every output this
	// frame; zero means not yet known. Sinks keep zero.
	NumOutputSamples int
	State            State
	// Position is the node's index in this frame's activation order. It is
	// only meaningful while State is Active.
	Position int
	Outputs  []OutputInfo
}

func newSchedInfo(numOutputs int) SchedInfo {
	outputs := make([]OutputInfo, numOutputs)
	for i := range outputs {
		outputs[i] = OutputInfo{Slot: bufalloc.NoSlot, LastUse: NoUse}
	}
	return SchedInfo{Outputs: outputs}
}

// ClearUses forgets every output's last use, left over from an earlier frame.
func (s *SchedInfo) ClearUses() {
	for i := range s.Outputs {
		s.Outputs[i].LastUse = NoUse
	}
}
