package builder

import (
	"context"
	"fmt"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/ctxlog"
	"github.com/vk/framegraph/internal/node"
	"github.com/vk/framegraph/internal/registry"
)

// linkNodes resolves every input address and connects the reading node.
func linkNodes(ctx context.Context, model *config.Model, p *Patch) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting node linking pass.")

	for _, cn := range model.Nodes {
		if len(cn.Inputs) == 0 {
			continue
		}
		ports := make([]node.Port, 0, len(cn.Inputs))
		for _, addr := range cn.Inputs {
			srcID := p.ids[addr.Name]
			src, _ := p.Graph.Get(srcID)
			out := addr.OutputIndex()
			if out >= src.NumOutputs() {
				return fmt.Errorf("%s: node %q reads %s, but %q has %d outputs", cn.Origin, cn.Name, addr, addr.Name, src.NumOutputs())
			}
			ports = append(ports, node.PortOf(srcID, node.OutputID(out)))
		}

		n, _ := p.Graph.Get(p.ids[cn.Name])
		if err := n.(registry.Connector).Connect(ports); err != nil {
			return fmt.Errorf("%s: node %q: %w", cn.Origin, cn.Name, err)
		}
		logger.Debug("Linked node.", "name", cn.Name, "inputs", ports)
	}

	logger.Debug("Finished node linking pass.")
	return nil
}
