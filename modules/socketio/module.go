// Package socketio provides the "socketio" node type: a sink that streams
// the frames it reads to a socket.io server.
//
// Render never blocks on the network. Frames are handed to a background
// goroutine through a bounded queue; when the queue is full the newest frame
// is dropped and counted, so a slow or disconnected server costs frames, not
// render deadlines.
//
// Each node publishes under a random stream id so a server can tell several
// streams, or several runs, apart:
//
//	node "socketio" "monitor" {
//	  inputs = ["mix"]
//	  url    = "http://localhost:3000/socket.io/"
//	  event  = "frame"
//	}
package socketio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/ctxlog"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/registry"
)

// DefaultQueue is the default number of frames buffered between Render and
// the network.
const DefaultQueue = 16

// Module implements the registry.Module interface for this package.
type Module struct {
	// Dial opens the transport. Nil means DialSocketIO.
	Dial DialFunc
}

// Args defines the arguments for the socketio node.
type Args struct {
	URL                string `hcl:"url" yaml:"url"`
	Namespace          string `hcl:"namespace,optional" yaml:"namespace"`
	Event              string `hcl:"event,optional" yaml:"event"`
	Queue              int    `hcl:"queue,optional" yaml:"queue"`
	Samples            int    `hcl:"samples,optional" yaml:"samples"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional" yaml:"insecure_skip_verify"`
}

// Register registers the node type with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("socketio", &registry.RegisteredNode{
		NewArgs: func() any { return &Args{Namespace: "/", Event: "frame", Queue: DefaultQueue} },
		Inputs:  registry.Exactly(1),
		Build: func(ctx context.Context, args any, s config.Settings) (node.Node, error) {
			return m.build(ctx, args.(*Args), s)
		},
	})
}

func (m *Module) build(ctx context.Context, a *Args, s config.Settings) (*Node, error) {
	if a.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	if a.Event == "" {
		return nil, fmt.Errorf("event must not be empty")
	}
	if a.Queue < 1 {
		return nil, fmt.Errorf("queue must be at least 1, got %d", a.Queue)
	}
	if a.Samples < 0 {
		return nil, fmt.Errorf("samples must not be negative, got %d", a.Samples)
	}
	if a.Samples == 0 {
		a.Samples = s.BlockSize
	}

	stream := uuid.NewString()
	logger := ctxlog.FromContext(ctx).With("node", "socketio", "url", a.URL, "stream", stream)

	dial := m.Dial
	if dial == nil {
		dial = DialSocketIO
	}
	t, err := dial(DialOptions{
		URL:                a.URL,
		Namespace:          a.Namespace,
		InsecureSkipVerify: a.InsecureSkipVerify,
		Logger:             logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket.io client: %w", err)
	}

	return New(t, Options{
		Stream:     stream,
		Event:      a.Event,
		Queue:      a.Queue,
		Samples:    a.Samples,
		SampleRate: s.SampleRate,
		Logger:     logger,
	}), nil
}
