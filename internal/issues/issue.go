// Package issues provides the diagnostic record reported by the builder.
package issues

import (
	"fmt"

	"github.com/erraggy/oasgen/internal/severity"
)

// Issue is a single diagnostic: a fallback taken or a tie broken while
// building a document. Issues never stop a build.
type Issue struct {
	// Path is the document path of the affected element
	// (e.g. "paths./items.get.parameters.id")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Field is the specific field, parameter or exception name involved (optional)
	Field string
	// Value is the offending value (optional)
	Value any
	// Context explains which rule resolved the issue (optional)
	Context string
	// Operation identifies the operation being assembled, nil outside one.
	Operation *OperationContext
}

// String returns a formatted string representation of the issue, prefixed
// with a symbol for its severity.
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	where := i.Path
	if i.Operation != nil && !i.Operation.IsEmpty() {
		where = fmt.Sprintf("%s %s", i.Path, i.Operation.String())
	}
	result := fmt.Sprintf("%s %s: %s", symbol, where, i.Message)
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// OperationContext identifies the operation an issue belongs to.
type OperationContext struct {
	// Method is the uppercase HTTP method
	Method string
	// Path is the route (e.g. "/items/{id}")
	Path string
	// OperationID is Owner.name of the handler
	OperationID string
}

// String returns "(operationId: X)", "(METHOD /path)" or "".
func (c OperationContext) String() string {
	switch {
	case c.OperationID != "":
		return fmt.Sprintf("(operationId: %s)", c.OperationID)
	case c.Method != "":
		return fmt.Sprintf("(%s %s)", c.Method, c.Path)
	case c.Path != "":
		return fmt.Sprintf("(path: %s)", c.Path)
	default:
		return ""
	}
}

// IsEmpty reports whether the context carries no information.
func (c OperationContext) IsEmpty() bool {
	return c.Method == "" && c.Path == "" && c.OperationID == ""
}

// Count returns how many issues have each severity.
func Count(list []Issue) map[severity.Severity]int {
	counts := make(map[severity.Severity]int)
	for _, i := range list {
		counts[i.Severity]++
	}
	return counts
}

// Filter returns the issues at or above the given severity, where Critical >
// Error > Warning > Info.
func Filter(list []Issue, minimum severity.Severity) []Issue {
	var out []Issue
	for _, i := range list {
		if severity.Rank(i.Severity) >= severity.Rank(minimum) {
			out = append(out, i)
		}
	}
	return out
}
