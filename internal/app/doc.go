// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the render lifecycle: load a patch, build
// the graph, render frames, shut down. It is decoupled from any specific
// entrypoint like a CLI or server.
package app
