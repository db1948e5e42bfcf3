package builder

import (
	"sync"
	"testing"

	"github.com/erraggy/oasgen/descriptor"
	"github.com/erraggy/oasgen/openapi"
	"github.com/stretchr/testify/require"
)

type logEntry struct {
	level string
	msg   string
	attrs []any
}

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string, attrs []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, attrs: attrs})
}

func (l *recordingLogger) Debug(msg string, attrs ...any) { l.record("debug", msg, attrs) }
func (l *recordingLogger) Info(msg string, attrs ...any)  { l.record("info", msg, attrs) }
func (l *recordingLogger) Warn(msg string, attrs ...any)  { l.record("warn", msg, attrs) }
func (l *recordingLogger) Error(msg string, attrs ...any) { l.record("error", msg, attrs) }

func (l *recordingLogger) With(_ ...any) descriptor.Logger { return l }

// traversals counts how many times the fields of the named object were visited.
func (l *recordingLogger) traversals(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.msg != "synthesizing object schema" {
			continue
		}
		for i := 0; i+1 < len(e.attrs); i += 2 {
			if e.attrs[i] == "name" && e.attrs[i+1] == name {
				n++
			}
		}
	}
	return n
}

var _ descriptor.Logger = (*recordingLogger)(nil)

// itemType returns the Item object used by the end-to-end scenarios.
func itemType() *descriptor.TypeDescriptor {
	return descriptor.Object("Item",
		descriptor.Field{Name: "id", Type: descriptor.PrimitiveOf(descriptor.Int64)},
		descriptor.Field{
			Name:        "name",
			Type:        descriptor.StringType(),
			Constraints: descriptor.NewConstraintSet(descriptor.NotBlank()),
		},
	)
}

func errorBody() *descriptor.TypeDescriptor {
	return descriptor.Object("ErrorBody",
		descriptor.Field{Name: "message", Type: descriptor.StringType()},
	)
}

// registered fetches a completed schema from the registry.
func registered(t *testing.T, reg *SchemaRegistry, name string) *openapi.Schema {
	t.Helper()
	s, complete := reg.Lookup(name)
	require.NotNil(t, s, "schema %s not registered", name)
	require.True(t, complete, "schema %s is still a placeholder", name)
	return s
}

// responseSchema returns the JSON schema of a response, or nil.
func responseSchema(t *testing.T, op *openapi.Operation, status int) *openapi.Schema {
	t.Helper()
	r := op.Response(status)
	require.NotNil(t, r, "no response for status %d", status)
	if r.Content == nil {
		return nil
	}
	mt, ok := r.Content.Get(openapi.ContentTypeJSON)
	require.True(t, ok)
	return mt.Schema
}
