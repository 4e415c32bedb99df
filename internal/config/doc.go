// Package config defines the format-agnostic patch model, along with the
// Loader and Args interfaces implemented by each patch format.
//
// The config.Model is the single input of the builder. Concrete loaders for
// HCL and YAML live in separate packages and produce the same model, so the
// rest of the application never sees which format a patch was written in.
package config
