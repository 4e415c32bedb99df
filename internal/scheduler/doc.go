// Package scheduler plans each frame of a graph: which nodes run, in what
// order, and which buffer slot each of their outputs writes to.
//
// # Why Scheduler Exists
//
// Nodes never store edges. They declare their inputs afresh every frame from
// Node.Inspect, so the topology and the block size may change between any two
// frames. The scheduler turns those declarations into a concrete plan right
// before rendering, and it does so without allocating once its working slices
// have grown to the size of the graph.
//
// # How It Works
//
// A pass has two stages:
//  1. Traversal. Starting from every sink, the scheduler walks backwards
//     with an explicit stack. Entering a node inspects it; each declared
//     input pushes its source and fixes the number of samples the source
//     must produce this frame. Leaving a node, after all its sources were
//     activated, inspects it again to record the activation position at
//     which each source output is last read. Nodes are appended to the
//     activation order on Leave, so producers always precede consumers.
//  2. Slot assignment. Walking the activation order, each output gets a slot
//     from bufalloc at its producer's position. Outputs nobody reads are
//     freed at once; the rest go on a min-heap keyed by last use and are
//     freed once the walk passes that position.
//
// # Node States
//
// Every node is Inactive between frames. Discovery makes it Found, entering
// it makes it Backedge, and leaving it makes it Active. Entering a node that
// is still Backedge means the walk came back to a node whose inputs are not
// resolved yet, which is a feedback loop.
//
// # Failure and Recovery
//
// Any error rolls the pass back before Schedule returns. A successful pass
// must be closed with Finish after rendering; a pass that is neither finished
// nor cleaned up, for instance because a node panicked during rendering,
// leaves the scheduler poisoned and every later Schedule fails with
// ErrPoisoned until Cleanup is called.
package scheduler
