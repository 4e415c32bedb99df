package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/framegraph/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// newEvalContext exposes the patch settings to node argument expressions.
func newEvalContext(s config.Settings) (*hcl.EvalContext, error) {
	sampleRate, err := gocty.ToCtyValue(s.SampleRate, cty.Number)
	if err != nil {
		return nil, fmt.Errorf("converting sample_rate: %w", err)
	}
	blockSize, err := gocty.ToCtyValue(s.BlockSize, cty.Number)
	if err != nil {
		return nil, fmt.Errorf("converting block_size: %w", err)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"sample_rate": sampleRate,
			"block_size":  blockSize,
		},
		Functions: map[string]function.Function{
			"min":   stdlib.MinFunc,
			"max":   stdlib.MaxFunc,
			"floor": stdlib.FloorFunc,
			"ceil":  stdlib.CeilFunc,
			"abs":   stdlib.AbsoluteFunc,
		},
	}, nil
}
