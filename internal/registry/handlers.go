package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/node"
)

// Unbounded is the Arity.Max of a node type taking any number of inputs.
const Unbounded = -1

// Arity bounds the number of inputs a node type accepts.
type Arity struct {
	Min int
	Max int
}

// Exactly is an Arity of n inputs.
func Exactly(n int) Arity { return Arity{Min: n, Max: n} }

// AtLeast is an Arity of n or more inputs.
func AtLeast(n int) Arity { return Arity{Min: n, Max: Unbounded} }

// Check reports whether n inputs are acceptable.
func (a Arity) Check(n int) error {
	switch {
	case n < a.Min && a.Min == a.Max:
		return fmt.Errorf("wants exactly %d inputs, got %d", a.Min, n)
	case n < a.Min:
		return fmt.Errorf("wants at least %d inputs, got %d", a.Min, n)
	case a.Max != Unbounded && n > a.Max:
		if a.Min == a.Max {
			return fmt.Errorf("wants exactly %d inputs, got %d", a.Max, n)
		}
		return fmt.Errorf("wants at most %d inputs, got %d", a.Max, n)
	}
	return nil
}

// RegisteredNode holds the compiled Go parts of a node type.
type RegisteredNode struct {
	// NewArgs returns a pointer to a fresh argument struct holding the
	// type's defaults. Nil means the type takes no arguments.
	NewArgs func() any
	// Inputs bounds the length of the patch's `inputs` list.
	Inputs Arity
	// Build creates the node from the decoded arguments. ctx carries the
	// logger and is not retained past Build.
	Build func(ctx context.Context, args any, s config.Settings) (node.Node, error)
}

// New decodes args and builds a node of this type.
func (rn *RegisteredNode) New(ctx context.Context, args config.Args, s config.Settings) (node.Node, error) {
	var target any
	if rn.NewArgs != nil {
		target = rn.NewArgs()
		if err := args.Decode(target); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	} else if err := args.Decode(&struct{}{}); err != nil {
		return nil, fmt.Errorf("takes no arguments: %w", err)
	}
	return rn.Build(ctx, target, s)
}

// Connector is implemented by nodes that read other nodes. The builder calls
// Connect once every node of a patch has been inserted, with one port per
// entry of the node's `inputs` list.
type Connector interface {
	Connect(inputs []node.Port) error
}

// RegisterNode registers a node type under name.
func (r *Registry) RegisterNode(name string, rn *RegisteredNode) {
	if _, exists := r.nodes[name]; exists {
		panic(fmt.Sprintf("node type '%s' already registered", name))
	}
	if rn.Build == nil {
		panic(fmt.Sprintf("node type '%s' has no Build function", name))
	}
	slog.Debug("Registering node type.", "type", name)
	r.nodes[name] = rn
}
