// Package severity provides severity levels for builder diagnostics.
//
// Builds never fail, so most diagnostics are warnings (a fallback was taken,
// an element was omitted) or info (a documented tie-break decided between
// two declarations). Error and Critical are used by callers that escalate
// diagnostics, such as the CLI in strict mode.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

import (
	"fmt"
	"strings"
)

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	// SeverityError indicates a condition the caller should treat as a failure.
	SeverityError Severity = iota

	// SeverityWarning indicates a fallback or an omitted element.
	SeverityWarning

	// SeverityInfo indicates a documented tie-break decision.
	SeverityInfo

	// SeverityCritical indicates output that cannot be trusted.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Rank orders severities from least (0, info) to most severe (3, critical).
// Unknown values rank below info.
func Rank(s Severity) int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// Parse converts a severity name to a Severity.
func Parse(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return SeverityInfo, fmt.Errorf("severity: unknown level %q", name)
	}
}
