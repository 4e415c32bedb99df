// Package registry maps the node type names used in patches (e.g. "sine")
// to the Go code that builds them.
//
// Node packages under modules/ implement Module and register one or more
// types at startup. The builder then looks types up by name, decodes the
// patch arguments into the type's argument struct and calls Build.
//
// Registration is programmer territory: registering the same type twice
// panics. Validate performs a startup check that every argument struct can be
// filled from both patch formats, so a missing tag shows up when the binary
// starts rather than when a user first writes a patch using that type.
package registry
