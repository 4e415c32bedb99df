// internal/nodeid/parser_test.go
package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		raw          string
		expectErr    bool
		expectedAddr Address
	}{
		{
			name:         "bare name",
			raw:          "osc",
			expectedAddr: New("osc"),
		},
		{
			name:         "with output",
			raw:          "split[1]",
			expectedAddr: NewWithOutput("split", 1),
		},
		{
			name:         "hyphens and underscores",
			raw:          "left_amp-2[0]",
			expectedAddr: NewWithOutput("left_amp-2", 0),
		},
		{
			name:      "error - empty string",
			raw:       "",
			expectErr: true,
		},
		{
			name:      "error - dotted path",
			raw:       "a.b",
			expectErr: true,
		},
		{
			name:      "error - non numeric output",
			raw:       "a[x]",
			expectErr: true,
		},
		{
			name:      "error - negative output",
			raw:       "a[-1]",
			expectErr: true,
		},
		{
			name:      "error - just hyphen",
			raw:       "-",
			expectErr: true,
		},
		{
			name:      "error - index overflow",
			raw:       "a[99999999999999999999]",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.raw)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedAddr, addr)
		})
	}
}

func TestParseAll(t *testing.T) {
	addrs, err := ParseAll([]string{"a", "b[2]"})
	require.NoError(t, err)
	assert.Equal(t, []Address{New("a"), NewWithOutput("b", 2)}, addrs)

	_, err = ParseAll([]string{"a", "b c"})
	assert.Error(t, err)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("osc_1"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("osc[0]"))
	assert.Error(t, ValidateName("_"))
}
