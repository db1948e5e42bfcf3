package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]bool
		expected []string
	}{
		{
			name:     "sorted keys",
			input:    map[string]bool{"Item": true, "ErrorBody": true, "Order": true},
			expected: []string{"ErrorBody", "Item", "Order"},
		},
		{
			name:     "single key",
			input:    map[string]bool{"only": true},
			expected: []string{"only"},
		},
		{
			name:     "empty map",
			input:    map[string]bool{},
			expected: []string{},
		},
		{
			name:     "nil map",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SortedKeys(tt.input), "SortedKeys(%v)", tt.input)
		})
	}
}

func TestSortedKeys_IntKeys(t *testing.T) {
	assert.Equal(t, []int{200, 404, 500}, SortedKeys(map[int]string{500: "e", 200: "ok", 404: "nf"}))
}
