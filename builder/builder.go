package builder

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oasgen/descriptor"
	"github.com/erraggy/oasgen/internal/httputil"
	"github.com/erraggy/oasgen/internal/issues"
	"github.com/erraggy/oasgen/openapi"
)

// Builder assembles OpenAPI documents from descriptor.API values.
//
// A Builder holds only configuration. Every Build call starts from an empty
// schema registry, so one Builder may serve many builds, including concurrent
// ones.
type Builder struct {
	cfg *builderConfig
}

// New creates a Builder with the given options.
func New(opts ...BuilderOption) *Builder {
	cfg := defaultBuilderConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Builder{cfg: cfg}
}

// Result is the outcome of a build.
type Result struct {
	// Document is the assembled document. It is never nil.
	Document *openapi.Document
	// Issues lists fallbacks and tie-breaks in build order.
	Issues []Issue
	// Registry is the schema registry the document's components were taken from.
	Registry *SchemaRegistry
}

// WarningCount returns the number of warning issues.
func (r *Result) WarningCount() int {
	return issues.Count(r.Issues)[SeverityWarning]
}

// InfoCount returns the number of info issues.
func (r *Result) InfoCount() int {
	return issues.Count(r.Issues)[SeverityInfo]
}

// job is one handler to assemble with its effective error handler index.
type job struct {
	handler descriptor.HandlerDescriptor
	method  string
	index   *HandlerIndex
}

type assembled struct {
	op     *openapi.Operation
	issues []Issue
}

// Build assembles the document for api. It never fails; a nil or empty api
// yields an empty document.
func (b *Builder) Build(api *descriptor.API) *Result {
	if api == nil {
		api = &descriptor.API{}
	}
	cfg := b.cfg
	doc := openapi.NewDocument(cfg.openAPIVersion, b.info(api.Info))
	registry := NewSchemaRegistry()

	global, globalIssues := IndexGlobalHandlers(api.GlobalErrorHandlers())
	for _, i := range globalIssues {
		cfg.logger.Info(i.Message, "path", i.Path)
	}
	result := &Result{Document: doc, Registry: registry, Issues: globalIssues}

	var jobs []job
	for _, c := range api.Controllers {
		idx := global.Overlay(c.Name, localHandlers(c))
		for _, h := range c.Handlers {
			if h.Owner == "" {
				h.Owner = c.Name
			}
			if h.Path == "" {
				h.Path = "/"
			}
			method, ok := httputil.NormalizeMethod(h.Method)
			if !ok {
				result.Issues = append(result.Issues, b.unsupportedMethod(&h)...)
				continue
			}
			jobs = append(jobs, job{handler: h, method: method, index: idx})
		}
	}
	cfg.logger.Debug("building document",
		"controllers", len(api.Controllers),
		"handlers", len(jobs),
		"globalExceptions", global.Len(),
		"concurrency", cfg.concurrency)

	out := b.assembleAll(jobs, registry)

	for i, j := range jobs {
		result.Issues = append(result.Issues, out[i].issues...)
		b.place(doc, &j.handler, j.method, out[i].op, result)
	}
	doc.Components.Schemas = registry.Snapshot()
	return result
}

// assembleAll assembles every job, concurrently when configured. Results are
// indexed by job so the output does not depend on scheduling.
func (b *Builder) assembleAll(jobs []job, registry *SchemaRegistry) []assembled {
	out := make([]assembled, len(jobs))
	if b.cfg.concurrency <= 1 || len(jobs) < 2 {
		a := NewAssembler(registry, b.options()...)
		for i := range jobs {
			out[i].op, out[i].issues = a.assemble(&jobs[i].handler, jobs[i].index)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(b.cfg.concurrency)
	for i := range jobs {
		g.Go(func() error {
			a := NewAssembler(registry, b.options()...)
			out[i].op, out[i].issues = a.assemble(&jobs[i].handler, jobs[i].index)
			return nil
		})
	}
	// Assembly never returns an error.
	_ = g.Wait()
	return out
}

// unsupportedMethod reports a handler whose method a path item cannot hold.
// Such handlers are never assembled, so none of their types are registered.
func (b *Builder) unsupportedMethod(h *descriptor.HandlerDescriptor) []Issue {
	opCtx := &OperationContext{Method: strings.ToUpper(h.Method), Path: h.Path, OperationID: h.OperationID()}
	diag := newDiagnostics(b.cfg.logger, opCtx)
	diag.warn(issues.FormatPath("paths", h.Path), h.Method, fmt.Sprintf("unsupported HTTP method %q; operation omitted", h.Method))
	return diag.list
}

// place stores op in the document under its path and method.
func (b *Builder) place(doc *openapi.Document, h *descriptor.HandlerDescriptor, method string, op *openapi.Operation, result *Result) {
	path := issues.FormatPath("paths", h.Path)
	opCtx := &OperationContext{Method: strings.ToUpper(method), Path: h.Path, OperationID: op.OperationID}
	diag := newDiagnostics(b.cfg.logger, opCtx)
	defer func() { result.Issues = append(result.Issues, diag.list...) }()

	item, exists := doc.Paths.Get(h.Path)
	if !exists {
		item = &openapi.PathItem{}
		doc.Paths.Set(h.Path, item)
	}
	prev := item.Operation(method)
	if replaced, _ := item.SetOperation(method, op); replaced {
		diag.warn(issues.FormatPath(path, method), prev.OperationID,
			fmt.Sprintf("%s %s is also declared by %s; the later handler is used", strings.ToUpper(method), h.Path, prev.OperationID))
	}
}

func (b *Builder) info(in descriptor.Info) openapi.Info {
	info := openapi.Info{Title: in.Title, Version: in.Version, Description: in.Description}
	if b.cfg.title != "" {
		info.Title = b.cfg.title
	}
	if b.cfg.version != "" {
		info.Version = b.cfg.version
	}
	if b.cfg.description != "" {
		info.Description = b.cfg.description
	}
	return info
}

func (b *Builder) options() []BuilderOption {
	return []BuilderOption{WithLogger(b.cfg.logger), WithContentType(b.cfg.contentType)}
}

// localHandlers returns the controller's error handlers scoped to it.
func localHandlers(c descriptor.Controller) []descriptor.ErrorHandlerDescriptor {
	locals := make([]descriptor.ErrorHandlerDescriptor, 0, len(c.ErrorHandlers))
	for _, eh := range c.ErrorHandlers {
		eh.Scope = descriptor.ScopeLocal
		if eh.Owner == "" {
			eh.Owner = c.Name
		}
		locals = append(locals, eh)
	}
	return locals
}
