package registry

import (
	"maps"
	"slices"
)

// Module is the interface that all node packages must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the node types known to a single application instance.
type Registry struct {
	nodes map[string]*RegisteredNode
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		nodes: make(map[string]*RegisteredNode),
	}
}

// NewWith creates a Registry and registers every module into it.
func NewWith(modules ...Module) *Registry {
	r := New()
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// Lookup returns the node type registered as name.
func (r *Registry) Lookup(name string) (*RegisteredNode, bool) {
	rn, ok := r.nodes[name]
	return rn, ok
}

// Types returns the registered type names in lexical order.
func (r *Registry) Types() []string {
	return slices.Sorted(maps.Keys(r.nodes))
}
