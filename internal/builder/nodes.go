package builder

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/ctxlog"
	"github.com/vk/framegraph/internal/registry"
)

// createNodes builds every node of the model and inserts it into the graph.
func createNodes(ctx context.Context, model *config.Model, r *registry.Registry, p *Patch) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting node creation pass.")

	for _, cn := range model.Nodes {
		rn, ok := r.Lookup(cn.Type)
		if !ok {
			return fmt.Errorf("%s: node %q has unknown type %q (known types: %v)", cn.Origin, cn.Name, cn.Type, r.Types())
		}
		if err := rn.Inputs.Check(len(cn.Inputs)); err != nil {
			return fmt.Errorf("%s: node %q of type %q %w", cn.Origin, cn.Name, cn.Type, err)
		}

		n, err := rn.New(ctxlog.With(ctx, "node", cn.Name), cn.Args, model.Settings)
		if err != nil {
			return fmt.Errorf("%s: node %q of type %q: %w", cn.Origin, cn.Name, cn.Type, err)
		}
		if _, ok := n.(registry.Connector); !ok && len(cn.Inputs) > 0 {
			err := fmt.Errorf("%s: node %q of type %q does not accept inputs", cn.Origin, cn.Name, cn.Type)
			// Not inserted, so Patch.Close would never reach it.
			if c, ok := n.(io.Closer); ok {
				err = errors.Join(err, c.Close())
			}
			return err
		}

		id := p.Graph.Insert(n)
		p.ids[cn.Name] = id
		p.names = append(p.names, cn.Name)
		logger.Debug("Created node.", "name", cn.Name, "type", cn.Type, "id", id, "outputs", n.NumOutputs())
	}

	logger.Debug("Finished node creation pass.")
	return nil
}
