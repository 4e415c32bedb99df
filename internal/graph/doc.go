// Package graph is the facade a host uses to build and render a node graph.
//
// # Why Graph Package Exists
//
// Rendering one frame touches four collaborators: the node table, the
// scheduler, the slot allocator and the execution engine. Graph owns all of
// them and exposes the handful of operations a host needs, so nothing
// outside this package has to know how a frame is planned.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│               Graph                 │
//	│  Insert / Remove / Get / Render     │
//	└───────┬─────────────┬───────────┬───┘
//	        │             │           │
//	        ▼             ▼           ▼
//	  ┌──────────┐  ┌───────────┐  ┌────────┐
//	  │nodetable │  │ scheduler │  │ engine │
//	  │ (arena)  │  │ +bufalloc │  │ +pool  │
//	  └──────────┘  └───────────┘  └────────┘
//
// # Lifecycle
//
//  1. **Build:** Insert nodes. Nodes without outputs become sinks; sinks are
//     rendered in insertion order.
//  2. **Wire:** Nodes name their inputs by node.Port from Inspect. Wiring can
//     change between any two frames.
//  3. **Render:** Each Render call schedules, executes and finishes exactly
//     one frame.
//  4. **Recover:** Scheduling errors clean up after themselves. A node that
//     panics while rendering leaves the graph poisoned; call Reset.
//
// # Thread-Safety
//
// A Graph is not safe for concurrent use. Render is synchronous and must not
// overlap with itself or with Insert and Remove.
package graph
