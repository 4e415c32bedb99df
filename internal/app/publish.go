package app

import (
	"fmt"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/nodeid"
	"github.com/vk/framegraph/modules/socketio"
)

// publishArgs fills socketio.Args from the command line instead of a patch.
type publishArgs struct {
	url       string
	namespace string
}

func (a publishArgs) Decode(target any) error {
	args, ok := target.(*socketio.Args)
	if !ok {
		return fmt.Errorf("publish arguments cannot decode into %T", target)
	}
	args.URL = a.url
	if a.namespace != "" {
		args.Namespace = a.namespace
	}
	return nil
}

// addPublishers appends a socketio node for every input of every output
// node, reading the same port the output reads.
func addPublishers(model *config.Model, url, namespace string) int {
	var added []*config.Node
	for _, n := range model.Nodes {
		if n.Type != "output" {
			continue
		}
		for i, in := range n.Inputs {
			added = append(added, &config.Node{
				Type:   "socketio",
				Name:   fmt.Sprintf("%s_publish_%d", n.Name, i),
				Inputs: []nodeid.Address{in},
				Args:   publishArgs{url: url, namespace: namespace},
				Origin: n.Origin,
			})
		}
	}
	model.Nodes = append(model.Nodes, added...)
	return len(added)
}
