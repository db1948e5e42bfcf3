package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		expected string
	}{
		{"error level", SeverityError, "error"},
		{"warning level", SeverityWarning, "warning"},
		{"info level", SeverityInfo, "info"},
		{"critical level", SeverityCritical, "critical"},
		{"unknown negative", Severity(-1), "unknown"},
		{"unknown large value", Severity(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.severity.String())
		})
	}
}

func TestRankOrdering(t *testing.T) {
	assert.Less(t, Rank(SeverityInfo), Rank(SeverityWarning))
	assert.Less(t, Rank(SeverityWarning), Rank(SeverityError))
	assert.Less(t, Rank(SeverityError), Rank(SeverityCritical))
	assert.Less(t, Rank(Severity(42)), Rank(SeverityInfo))
}

func TestParse(t *testing.T) {
	for _, s := range []Severity{SeverityInfo, SeverityWarning, SeverityError, SeverityCritical} {
		got, err := Parse(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := Parse(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, SeverityWarning, got)

	_, err = Parse("fatal")
	assert.Error(t, err)
}
