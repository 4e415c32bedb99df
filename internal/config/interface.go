package config

import "context"

// Loader is the interface for a format-specific patch loader.
type Loader interface {
	// Load reads every patch file found under paths and merges them into a
	// single model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Args is the unevaluated argument body of one node. It is decoded by the
// node type's factory, which knows the concrete Go struct.
type Args interface {
	// Decode fills target from the arguments. Fields the patch does not set
	// keep their current value, so callers pre-fill defaults. Arguments
	// target has no field for are an error.
	Decode(target any) error
}

// NoArgs is an empty argument body.
type NoArgs struct{}

// Decode leaves target untouched.
func (NoArgs) Decode(any) error { return nil }
