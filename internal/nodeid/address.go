// internal/nodeid/address.go
package nodeid

import "strconv"

// String serializes the Address into its canonical form.
func (a Address) String() string {
	if !a.HasOutput() {
		return a.Name
	}
	return a.Name + "[" + strconv.Itoa(a.Output) + "]"
}
