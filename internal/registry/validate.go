package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/framegraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Validate checks every registered argument struct. Each exported field must
// carry matching `hcl` and `yaml` tags and have a type HCL values convert to.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.Types() {
		rn := r.nodes[name]
		if rn.Inputs.Min < 0 || (rn.Inputs.Max != Unbounded && rn.Inputs.Max < rn.Inputs.Min) {
			errs = append(errs, fmt.Sprintf("node type '%s': invalid input arity %+v", name, rn.Inputs))
		}
		if rn.NewArgs == nil {
			continue
		}

		args := rn.NewArgs()
		argsType := reflect.TypeOf(args)
		if argsType == nil || argsType.Kind() != reflect.Pointer || argsType.Elem().Kind() != reflect.Struct {
			errs = append(errs, fmt.Sprintf("node type '%s': NewArgs must return a pointer to a struct, got %v", name, argsType))
			continue
		}

		structType := argsType.Elem()
		for i := 0; i < structType.NumField(); i++ {
			field := structType.Field(i)
			if !field.IsExported() {
				continue
			}
			hclName := tagName(field.Tag.Get("hcl"))
			yamlName := tagName(field.Tag.Get("yaml"))
			if hclName == "" || yamlName == "" {
				errs = append(errs, fmt.Sprintf("node type '%s': field '%s' needs both hcl and yaml tags", name, field.Name))
				continue
			}
			if hclName != yamlName {
				errs = append(errs, fmt.Sprintf("node type '%s': field '%s' is '%s' in HCL but '%s' in YAML", name, field.Name, hclName, yamlName))
			}

			if _, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface()); err != nil {
				errs = append(errs, fmt.Sprintf("node type '%s', argument '%s': no HCL type for Go type %s: %v", name, hclName, field.Type, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validated.", "node_types", len(r.nodes))
	return nil
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}
