package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/integration_tests/itest"
)

func TestErrorHandling_PatchIsRejectedBeforeRendering(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		patch       string
		errContains []string
	}{
		{
			name: "duplicate node name",
			patch: `
node "sine" "osc" {}
node "zero" "osc" {}
`,
			errContains: []string{`node "osc" already defined at`, "main.hcl:2,"},
		},
		{
			name: "undefined input",
			patch: `
node "output" "out" {
  inputs = ["ghost"]
}
`,
			errContains: []string{"invalid patch", "which is not defined"},
		},
		{
			name: "output index out of range",
			patch: `
node "sine" "osc" {}
node "output" "out" {
  inputs = ["osc[1]"]
}
`,
			errContains: []string{`"osc" has 1 outputs`},
		},
		{
			name: "sink without inputs",
			patch: `
node "output" "out" {
  inputs = []
}
`,
			errContains: []string{"wants at least 1 inputs, got 0"},
		},
		{
			name: "too many inputs",
			patch: `
node "sine" "a" {}
node "sine" "b" {}
node "gain" "g" {
  inputs = ["a", "b"]
}
`,
			errContains: []string{"wants exactly 1 inputs, got 2"},
		},
		{
			name: "mixer gain count",
			patch: `
node "sine" "osc" {}
node "mixer" "sum" {
  inputs = ["osc"]
  gains  = [0.5, 0.5]
}
`,
			errContains: []string{"mixer has 2 gains for 1 inputs"},
		},
		{
			name: "frequency above nyquist",
			patch: `
settings {
  sample_rate = 8000
}
node "sine" "osc" {
  frequency = 5000
}
`,
			errContains: []string{`node "osc"`, "frequency must be in [0, 4000), got 5000"},
		},
		{
			name: "wrong argument type",
			patch: `
node "gain" "g" {
  inputs = ["g"]
  gain   = "loud"
}
`,
			errContains: []string{"invalid arguments"},
		},
		{
			name:        "missing required argument",
			patch:       `node "socketio" "pub" {}`,
			errContains: []string{`"url"`},
		},
		{
			name: "negative samples",
			patch: `
node "sine" "osc" {}
node "meter" "m" {
  inputs  = ["osc"]
  samples = -1
}
`,
			errContains: []string{"must not be negative"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p, err := itest.Build(t, map[string]string{"main.hcl": tc.patch}, config.Settings{})

			require.Error(t, err)
			assert.Nil(t, p)
			for _, want := range tc.errContains {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
