package builder

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/ctxlog"
	"github.com/vk/framegraph/internal/graph"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/registry"
)

// Patch is a graph built from a patch file, with its nodes addressable by
// their patch names.
type Patch struct {
	Graph    *graph.Graph
	Settings config.Settings

	ids   map[string]node.ID
	names []string
}

// Node returns the ID of the node called name.
func (p *Patch) Node(name string) (node.ID, bool) {
	id, ok := p.ids[name]
	return id, ok
}

// Names returns node names in patch order.
func (p *Patch) Names() []string {
	return append([]string(nil), p.names...)
}

// Close releases resources held by nodes implementing io.Closer, in reverse
// patch order.
func (p *Patch) Close() error {
	var errs []error
	for i := len(p.names) - 1; i >= 0; i-- {
		n, ok := p.Graph.Get(p.ids[p.names[i]])
		if !ok {
			continue
		}
		if c, ok := n.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("node %q: %w", p.names[i], err))
			}
		}
	}
	return errors.Join(errs...)
}

// Build constructs a graph from model using the node types in r.
func Build(ctx context.Context, model *config.Model, r *registry.Registry, opts ...graph.Option) (*Patch, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid patch: %w", err)
	}

	p := &Patch{
		Graph:    graph.New(opts...),
		Settings: model.Settings,
		ids:      make(map[string]node.ID, len(model.Nodes)),
		names:    make([]string, 0, len(model.Nodes)),
	}

	// First pass: create and insert every node.
	if err := createNodes(ctx, model, r, p); err != nil {
		// Nodes already built may hold resources.
		_ = p.Close()
		return nil, err
	}
	logger.Debug("Build: Node creation complete.", "node_count", len(p.names))

	// Second pass: wire inputs.
	if err := linkNodes(ctx, model, p); err != nil {
		_ = p.Close()
		return nil, err
	}
	logger.Debug("Build: Node linking complete.")

	logger.Info("Build: Graph construction successful.", "nodes", len(p.names), "sinks", len(p.Graph.Sinks()))
	return p, nil
}
