// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasgen document generation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"errors"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"

	"github.com/erraggy/oasgen"
)

const serverInstructions = `oasgen MCP server: builds OpenAPI 3 documents from handler manifests.

A manifest declares object types, exception types, advice units holding global error handlers, and controllers holding handlers and local error handlers. Pass it either as a file path or inline content (YAML or JSON).

Configuration: defaults are configurable via OASGEN_* environment variables set in your MCP client config.

Key settings:
- OASGEN_CACHE_ENABLED (default: true): cache resolved manifests per session
- OASGEN_CACHE_TTL (default: 15m): cache entry lifetime
- OASGEN_RATE_LIMIT (default: 10): tool calls per second, 0 disables throttling
- OASGEN_RATE_BURST (default: 20): burst size for throttling
- OASGEN_CONCURRENCY (default: 1): operations assembled at once by generate
- OASGEN_INSPECT_LIMIT (default: 100): default page size for inspect

Caching: file entries use path+mtime as key and are invalidated when the file changes.`

// errRateLimited is returned when a tool call exceeds the configured rate.
var errRateLimited = errors.New("rate limit exceeded; retry shortly")

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		manifestCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasgen", Version: oasgen.Version()},
		&mcp.ServerOptions{Instructions: serverInstructions},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	limiter := newLimiter()

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate an OpenAPI 3 document from a handler manifest. Returns document statistics, warning and info counts, the issues found while building, and the document itself as YAML or JSON. Use output to write the document to a file instead of returning it inline. Title, version and description override the manifest's info.",
	}, throttled(limiter, handleGenerate))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Summarize a handler manifest without building a document: controller, handler, advice and error handler counts, plus one entry per handler with its method, path and operationId. Use offset/limit to paginate through handlers.",
	}, throttled(limiter, handleInspect))
}

// newLimiter returns the limiter shared by every tool. A non-positive rate
// disables throttling.
func newLimiter() *rate.Limiter {
	if cfg.RateLimit <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
}

// throttled rejects calls that exceed limiter with an error result instead of
// running next.
func throttled[In, Out any](limiter *rate.Limiter, next mcp.ToolHandlerFor[In, Out]) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		if !limiter.Allow() {
			var zero Out
			return errResult(errRateLimited), zero, nil
		}
		return next(ctx, req, in)
	}
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.InspectLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.InspectLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
