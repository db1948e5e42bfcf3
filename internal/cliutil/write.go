// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasgen/internal/issues"
	"github.com/erraggy/oasgen/internal/severity"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteIssues writes every issue at or above minimum, one per line, followed
// by a summary line. It returns the number of issues written.
func WriteIssues(w io.Writer, list []issues.Issue, minimum severity.Severity) int {
	shown := issues.Filter(list, minimum)
	if len(shown) == 0 {
		return 0
	}
	for _, issue := range shown {
		Writef(w, "  %s\n", issue.String())
	}
	counts := issues.Count(shown)
	Writef(w, "\n%d warning(s), %d info message(s)\n",
		counts[severity.SeverityWarning], counts[severity.SeverityInfo])
	return len(shown)
}
