package builder

import (
	"fmt"

	"github.com/erraggy/oasgen/descriptor"
	"github.com/erraggy/oasgen/internal/httputil"
	"github.com/erraggy/oasgen/internal/issues"
	"github.com/erraggy/oasgen/openapi"
)

// Description fallbacks used when neither a declared reason nor a standard
// reason phrase exists for a status.
const (
	DefaultSuccessDescription = "Successful operation"
	DefaultErrorDescription   = "error"
)

// IndexEntry pairs an exception type with the error handler resolving it.
type IndexEntry struct {
	Exception descriptor.ExceptionType
	Handler   *descriptor.ErrorHandlerDescriptor
}

// HandlerIndex maps exception names to error handlers. It is immutable once
// built; Overlay returns a new index.
type HandlerIndex struct {
	order   []string
	entries map[string]IndexEntry
}

func newHandlerIndex(capacity int) *HandlerIndex {
	return &HandlerIndex{
		order:   make([]string, 0, capacity),
		entries: make(map[string]IndexEntry, capacity),
	}
}

// IndexGlobalHandlers builds the global index from the ScopeGlobal handlers
// in handlers. When two handlers declare the same exception the first one
// registered wins; each losing declaration is reported as an info issue.
func IndexGlobalHandlers(handlers []descriptor.ErrorHandlerDescriptor) (*HandlerIndex, []Issue) {
	idx := newHandlerIndex(len(handlers))
	var dropped []Issue
	for i := range handlers {
		h := &handlers[i]
		if h.Scope != descriptor.ScopeGlobal {
			continue
		}
		for _, exc := range h.Exceptions {
			if prev, ok := idx.entries[exc.Name]; ok {
				dropped = append(dropped, Issue{
					Path:     issues.FormatPath("advice", h.Owner, h.Name),
					Field:    exc.Name,
					Message:  fmt.Sprintf("exception %s is already handled by %s.%s; ignored", exc.Name, prev.Handler.Owner, prev.Handler.Name),
					Severity: SeverityInfo,
					Context:  "first registered global handler wins",
				})
				continue
			}
			idx.put(exc, h)
		}
	}
	return idx, dropped
}

func (idx *HandlerIndex) put(exc descriptor.ExceptionType, h *descriptor.ErrorHandlerDescriptor) {
	if _, ok := idx.entries[exc.Name]; !ok {
		idx.order = append(idx.order, exc.Name)
	}
	idx.entries[exc.Name] = IndexEntry{Exception: exc, Handler: h}
}

// Overlay returns a copy of idx with the local handlers of owner applied.
// A local handler replaces the global entry for the same exception and keeps
// its position; exceptions new to the index are appended in declaration
// order. Between two local handlers of one class the first declared wins.
// Handlers that are not ScopeLocal, or that belong to another class, are
// ignored. idx itself is never modified.
func (idx *HandlerIndex) Overlay(owner string, locals []descriptor.ErrorHandlerDescriptor) *HandlerIndex {
	out := newHandlerIndex(idx.Len() + len(locals))
	for _, e := range idx.Entries() {
		out.put(e.Exception, e.Handler)
	}
	seen := make(map[string]bool)
	for i := range locals {
		h := &locals[i]
		if h.Scope != descriptor.ScopeLocal || (h.Owner != "" && h.Owner != owner) {
			continue
		}
		for _, exc := range h.Exceptions {
			if seen[exc.Name] {
				continue
			}
			seen[exc.Name] = true
			out.put(exc, h)
		}
	}
	return out
}

// Len returns the number of indexed exceptions.
func (idx *HandlerIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.order)
}

// Lookup returns the entry for an exception name.
func (idx *HandlerIndex) Lookup(exception string) (IndexEntry, bool) {
	if idx == nil {
		return IndexEntry{}, false
	}
	e, ok := idx.entries[exception]
	return e, ok
}

// Entries returns the index entries in iteration order.
func (idx *HandlerIndex) Entries() []IndexEntry {
	if idx == nil {
		return nil
	}
	out := make([]IndexEntry, 0, len(idx.order))
	for _, name := range idx.order {
		out = append(out, idx.entries[name])
	}
	return out
}

// SuccessStatus returns the status of h's success response: the declared
// status, else 201 for POST, else 200.
func SuccessStatus(h *descriptor.HandlerDescriptor) int {
	if h.Status > 0 {
		return h.Status
	}
	if httputil.IsPost(h.Method) {
		return httputil.StatusCreated
	}
	return httputil.StatusOK
}

// ErrorStatus returns the status an error handler produces for exc, along
// with the reason declared by the same source: the handler's declared status,
// else the exception type's, else 500.
func ErrorStatus(h *descriptor.ErrorHandlerDescriptor, exc descriptor.ExceptionType) (status int, reason string) {
	switch {
	case h.Status > 0:
		return h.Status, h.Reason
	case exc.Status > 0:
		return exc.Status, exc.Reason
	default:
		return httputil.StatusInternalServerError, h.Reason
	}
}

func describe(reason string, status int, fallback string) string {
	if reason != "" {
		return reason
	}
	if phrase := httputil.ReasonPhrase(status); phrase != "" {
		return phrase
	}
	return fallback
}

// resolver builds the responses of one operation.
type resolver struct {
	synth       *Synthesizer
	diag        *diagnostics
	contentType string
}

// responses registers the success response, then one response per index
// entry whose status is still free.
func (r *resolver) responses(h *descriptor.HandlerDescriptor, idx *HandlerIndex, base string) *openapi.OrderedMap[*openapi.Response] {
	out := openapi.NewOrderedMap[*openapi.Response]()

	status := SuccessStatus(h)
	key := httputil.StatusKey(status)
	out.Set(key, &openapi.Response{
		Description: describe(h.Reason, status, DefaultSuccessDescription),
		Content:     openapi.ContentOf(r.contentType, r.synth.synthesize(h.Return, h.ReturnConstraints, issues.FormatPath(base, key))),
	})

	for _, e := range idx.Entries() {
		status, reason := ErrorStatus(e.Handler, e.Exception)
		key := httputil.StatusKey(status)
		if out.Has(key) {
			r.diag.info(issues.FormatPath(base, key), e.Exception.Name,
				fmt.Sprintf("response for %s from %s.%s dropped; status %d already registered", e.Exception.Name, e.Handler.Owner, e.Handler.Name, status),
				"first response per status wins")
			continue
		}
		out.Set(key, &openapi.Response{
			Description: describe(reason, status, DefaultErrorDescription),
			Content:     openapi.ContentOf(r.contentType, r.synth.synthesize(e.Handler.Return, nil, issues.FormatPath(base, key))),
		})
	}
	return out
}
