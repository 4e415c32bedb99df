// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
)

// addressRegex matches `name` or `name[1]`.
var addressRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(?:\[(\d+)\])?$`)

// nameRegex matches a bare node name.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// isValidName checks for undesirable but technically valid names.
func isValidName(name string) bool {
	return name != "-" && name != "_"
}

// ValidateName reports whether name can be used for a node.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("node name cannot be empty")
	}
	if !nameRegex.MatchString(name) || !isValidName(name) {
		return fmt.Errorf("invalid node name: %q", name)
	}
	return nil
}

// Parse creates an Address from its canonical string representation.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("input reference cannot be empty")
	}

	matches := addressRegex.FindStringSubmatch(raw)
	if matches == nil {
		return Address{}, fmt.Errorf("invalid input reference format: %q", raw)
	}

	name := matches[1]
	if !isValidName(name) {
		return Address{}, fmt.Errorf("invalid node name: %q", name)
	}

	addr := New(name)
	if matches[2] != "" {
		index, err := strconv.Atoi(matches[2])
		if err != nil {
			// Only reachable on overflow; the regex admits digits only.
			return Address{}, fmt.Errorf("invalid output index in %q: %w", raw, err)
		}
		addr.Output = index
	}
	return addr, nil
}

// ParseAll parses every reference in raws, stopping at the first error.
func ParseAll(raws []string) ([]Address, error) {
	addrs := make([]Address, 0, len(raws))
	for _, raw := range raws {
		addr, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}
