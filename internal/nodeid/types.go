// internal/nodeid/types.go
package nodeid

// Address refers to one output of a named node, e.g. `osc` or `split[1]`.
type Address struct {
	Name   string
	Output int // -1 indicates no explicit output.
}

// New creates an address without an explicit output.
func New(name string) Address {
	return Address{Name: name, Output: -1}
}

// NewWithOutput creates an address that names an output.
func NewWithOutput(name string, output int) Address {
	return Address{Name: name, Output: output}
}

// HasOutput returns true if the address names its output explicitly.
func (a Address) HasOutput() bool {
	return a.Output != -1
}

// OutputIndex is the output the address resolves to. An address without an
// explicit output reads output 0.
func (a Address) OutputIndex() int {
	if a.Output == -1 {
		return 0
	}
	return a.Output
}
