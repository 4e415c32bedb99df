package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// bodyArgs implements config.Args over the leftover attributes of a node
// block. Targets are decoded with gohcl, so their fields carry `hcl` tags.
type bodyArgs struct {
	body    hcl.Body
	evalCtx *hcl.EvalContext
}

func (a *bodyArgs) Decode(target any) error {
	diags := gohcl.DecodeBody(a.body, a.evalCtx, target)
	if diags.HasErrors() {
		return fmt.Errorf("invalid node arguments: %w", diags)
	}
	return nil
}
