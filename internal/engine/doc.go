// Package engine runs a scheduled frame.
//
// # How It Works
//
// The engine receives the activation order and slot layout computed by the
// scheduler and walks it once:
//  1. The buffer pool is grown to the slot count and every buffer reserves
//     the largest size its slot was assigned, so rendering never allocates.
//  2. For each node, its output buffers are locked exclusively, sized to the
//     node's sample count and handed to Node.Render as plain slices.
//  3. Inputs are read through a RenderContext. Each distinct buffer is
//     opened at most once per node, under the shared lock.
//  4. When Render returns, or panics, outputs are marked Active or
//     InactiveDirty according to the node's result and every lock is
//     released.
//
// The engine never reorders or skips nodes; scheduling decisions live in
// package scheduler.
package engine
