// Package hcl provides the HCL implementation of config.Loader.
//
// A patch is one or more .hcl files containing at most one `settings` block
// and any number of `node "type" "name"` blocks. Node attributes other than
// `inputs` are evaluated lazily, when the node type decodes them, against a
// context that exposes the patch settings as `sample_rate` and `block_size`
// together with a few numeric functions (min, max, floor, ceil, abs).
package hcl
