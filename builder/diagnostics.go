package builder

import (
	"github.com/erraggy/oasgen/descriptor"
	"github.com/erraggy/oasgen/internal/issues"
	"github.com/erraggy/oasgen/internal/severity"
)

// Issue is a build diagnostic.
type Issue = issues.Issue

// OperationContext identifies the operation an Issue belongs to.
type OperationContext = issues.OperationContext

// Severity levels used by the builder.
const (
	SeverityInfo    = severity.SeverityInfo
	SeverityWarning = severity.SeverityWarning
)

// diagnostics collects issues for one unit of work and mirrors them to the
// logger. It is not safe for concurrent use; concurrent builds give each
// operation its own collector.
type diagnostics struct {
	logger descriptor.Logger
	op     *OperationContext
	list   []Issue
}

func newDiagnostics(logger descriptor.Logger, op *OperationContext) *diagnostics {
	if logger == nil {
		logger = descriptor.NopLogger{}
	}
	return &diagnostics{logger: logger, op: op}
}

func (d *diagnostics) warn(path, field, msg string) {
	d.add(Issue{Path: path, Field: field, Message: msg, Severity: SeverityWarning})
}

func (d *diagnostics) info(path, field, msg, context string) {
	d.add(Issue{Path: path, Field: field, Message: msg, Severity: SeverityInfo, Context: context})
}

func (d *diagnostics) add(i Issue) {
	i.Operation = d.op
	d.list = append(d.list, i)
	attrs := []any{"path", i.Path}
	if i.Field != "" {
		attrs = append(attrs, "field", i.Field)
	}
	if d.op != nil && d.op.OperationID != "" {
		attrs = append(attrs, "operationId", d.op.OperationID)
	}
	if i.Severity == SeverityWarning {
		d.logger.Warn(i.Message, attrs...)
		return
	}
	d.logger.Info(i.Message, attrs...)
}
