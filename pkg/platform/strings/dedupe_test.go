package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeExcluding(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		exclude  []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: nil},
		{name: "single element", input: []string{"foo"}, expected: []string{"foo"}},
		{name: "trims and dedupes", input: []string{"  foo ", "bar", "foo", "", "  "}, expected: []string{"foo", "bar"}},
		{name: "only blanks", input: []string{" ", ""}, expected: nil},
		{
			name:     "drops the excluded value",
			input:    []string{"GBR-2024-PS-1", "GBR-2024-PS-2"},
			exclude:  []string{"GBR-2024-PS-2"},
			expected: []string{"GBR-2024-PS-1"},
		},
		{
			name:     "only excluded values yields nil",
			input:    []string{"GBR-2024-PS-2", " GBR-2024-PS-2 "},
			exclude:  []string{"GBR-2024-PS-2"},
			expected: nil,
		},
		{
			name:     "preserves order",
			input:    []string{"c", "a", "b", "a"},
			exclude:  nil,
			expected: []string{"c", "a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeExcluding(tt.input, tt.exclude...))
		})
	}
}
