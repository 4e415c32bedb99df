package scheduler

import "errors"

// Scheduling errors. Each aborts the current frame; they describe a malformed
// graph, not a transient condition, so nothing retries them. Returned errors
// wrap one of these with the offending node, so match with errors.Is.
var (
	// ErrInvalidConnection: a declared input names a node that does not exist
	// or an output index the node does not have.
	ErrInvalidConnection = errors.New("invalid connection")

	// ErrSampleCountMismatch: consumers demanded different sample counts from
	// the same node within one frame.
	ErrSampleCountMismatch = errors.New("sample count mismatch")

	// ErrFeedbackLoop: the traversal from the sinks reached a cycle.
	ErrFeedbackLoop = errors.New("feedback loop")

	// ErrPoisoned: Schedule was entered while a previous pass had not been
	// finished or cleaned up.
	ErrPoisoned = errors.New("scheduler state poisoned by an unfinished pass")

	// ErrSampleCountUnspecified: an input was declared without a sample
	// count by a node that has no output count to default to, or with a
	// count of zero.
	ErrSampleCountUnspecified = errors.New("input sample count not specified")
)
