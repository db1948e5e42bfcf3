package builder

import (
	"strings"

	"github.com/erraggy/oasgen/descriptor"
	"github.com/erraggy/oasgen/internal/issues"
	"github.com/erraggy/oasgen/openapi"
)

// Assembler builds operations against a shared SchemaRegistry.
//
// An Assembler is not safe for concurrent use; give each goroutine its own
// Assembler over the same registry.
type Assembler struct {
	registry    *SchemaRegistry
	logger      descriptor.Logger
	contentType string
	list        []Issue
}

// NewAssembler returns an Assembler writing schemas to registry.
func NewAssembler(registry *SchemaRegistry, opts ...BuilderOption) *Assembler {
	cfg := defaultBuilderConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Assembler{registry: registry, logger: cfg.logger, contentType: cfg.contentType}
}

// Issues returns the diagnostics of every Assemble call so far.
func (a *Assembler) Issues() []Issue {
	return a.list
}

// Assemble builds the operation for h. idx holds the error handlers that
// apply to h, normally the global index overlaid with h's class handlers.
func (a *Assembler) Assemble(h *descriptor.HandlerDescriptor, idx *HandlerIndex) *openapi.Operation {
	op, list := a.assemble(h, idx)
	a.list = append(a.list, list...)
	return op
}

func (a *Assembler) assemble(h *descriptor.HandlerDescriptor, idx *HandlerIndex) (*openapi.Operation, []Issue) {
	method := strings.ToLower(h.Method)
	opCtx := &OperationContext{Method: strings.ToUpper(h.Method), Path: h.Path, OperationID: h.OperationID()}
	diag := newDiagnostics(a.logger, opCtx)
	synth := newSynthesizer(a.registry, diag)
	base := issues.FormatPath("paths", h.Path, method)

	op := &openapi.Operation{
		OperationID: h.OperationID(),
		Summary:     summaryFor(h.Name),
	}

	for _, p := range h.Params {
		switch p.Binding {
		case descriptor.BindingBody:
			a.requestBody(op, p, synth, diag, base)
		case descriptor.BindingPath, descriptor.BindingQuery, descriptor.BindingHeader:
			a.parameter(op, p, synth, diag, base)
		default:
			a.logger.Debug("skipping unbound parameter", "operationId", op.OperationID, "name", p.Name)
		}
	}

	r := &resolver{synth: synth, diag: diag, contentType: a.contentType}
	op.Responses = r.responses(h, idx, issues.FormatPath(base, "responses"))

	a.logger.Debug("assembled operation",
		"operationId", op.OperationID,
		"parameters", len(op.Parameters),
		"responses", op.Responses.Len())
	return op, diag.list
}

func (a *Assembler) requestBody(op *openapi.Operation, p descriptor.ParamDescriptor, synth *Synthesizer, diag *diagnostics, base string) {
	path := issues.FormatPath(base, "requestBody")
	schema := synth.synthesize(p.Type, p.Constraints, path)
	if schema == nil {
		diag.warn(path, p.Name, "body parameter has no type; omitted")
		return
	}
	if op.RequestBody != nil {
		diag.warn(path, p.Name, "multiple body parameters; the last one is used")
	}
	op.RequestBody = &openapi.RequestBody{
		Required: boolOr(p.Required, true),
		Content:  openapi.ContentOf(a.contentType, schema),
	}
}

func (a *Assembler) parameter(op *openapi.Operation, p descriptor.ParamDescriptor, synth *Synthesizer, diag *diagnostics, base string) {
	in := p.Binding.String()
	path := issues.FormatPath(base, "parameters", p.Name)
	if p.Name == "" {
		diag.warn(issues.FormatPath(base, "parameters"), "", in+" parameter has no name; omitted")
		return
	}

	required := boolOr(p.Required, true)
	if p.Binding == descriptor.BindingPath {
		if !required {
			diag.info(path, p.Name, "path parameter declared optional; marked required", "path parameters are always required")
		}
		required = true
	}

	param := &openapi.Parameter{
		Name:     p.Name,
		In:       in,
		Required: required,
		Schema:   synth.synthesize(p.Type, p.Constraints, path),
	}
	for i, existing := range op.Parameters {
		if existing.In == in && existing.Name == p.Name {
			diag.warn(path, p.Name, "duplicate "+in+" parameter; the last declaration is used")
			op.Parameters[i] = param
			return
		}
	}
	op.Parameters = append(op.Parameters, param)
}

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}
