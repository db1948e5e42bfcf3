package builder

import (
	"github.com/erraggy/oasgen/descriptor"
	"github.com/erraggy/oasgen/openapi"
)

// BuilderOption configures a Builder instance.
// Options are applied when creating a new Builder with New().
type BuilderOption func(*builderConfig)

// builderConfig holds builder configuration applied via options.
type builderConfig struct {
	openAPIVersion string
	title          string
	version        string
	description    string
	contentType    string
	concurrency    int
	logger         descriptor.Logger
}

func defaultBuilderConfig() *builderConfig {
	return &builderConfig{
		openAPIVersion: openapi.DefaultVersion,
		contentType:    openapi.ContentTypeJSON,
		concurrency:    1,
		logger:         descriptor.NopLogger{},
	}
}

// WithTitle overrides the title from the API's Info.
func WithTitle(title string) BuilderOption {
	return func(cfg *builderConfig) { cfg.title = title }
}

// WithVersion overrides the API version from the API's Info.
func WithVersion(version string) BuilderOption {
	return func(cfg *builderConfig) { cfg.version = version }
}

// WithDescription overrides the description from the API's Info.
func WithDescription(description string) BuilderOption {
	return func(cfg *builderConfig) { cfg.description = description }
}

// WithOpenAPIVersion sets the "openapi" version string written to the document.
// The default is openapi.DefaultVersion.
func WithOpenAPIVersion(v string) BuilderOption {
	return func(cfg *builderConfig) {
		if v != "" {
			cfg.openAPIVersion = v
		}
	}
}

// WithContentType sets the media type used for request and response bodies.
// The default is application/json.
func WithContentType(ct string) BuilderOption {
	return func(cfg *builderConfig) {
		if ct != "" {
			cfg.contentType = ct
		}
	}
}

// WithConcurrency sets how many operations are assembled at once.
// Values below 2 build sequentially.
func WithConcurrency(n int) BuilderOption {
	return func(cfg *builderConfig) {
		if n < 1 {
			n = 1
		}
		cfg.concurrency = n
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l descriptor.Logger) BuilderOption {
	return func(cfg *builderConfig) {
		if l == nil {
			l = descriptor.NopLogger{}
		}
		cfg.logger = l
	}
}
