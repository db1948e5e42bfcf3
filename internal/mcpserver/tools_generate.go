package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgen/builder"
	"github.com/erraggy/oasgen/internal/fileutil"
	"github.com/erraggy/oasgen/openapi"
)

type generateInput struct {
	Manifest       manifestInput `json:"manifest"                  jsonschema:"The handler manifest to build from"`
	Format         string        `json:"format,omitempty"          jsonschema:"Document format: yaml (default) or json"`
	Title          string        `json:"title,omitempty"           jsonschema:"Override the manifest's API title"`
	Version        string        `json:"version,omitempty"         jsonschema:"Override the manifest's API version"`
	Description    string        `json:"description,omitempty"     jsonschema:"Override the manifest's API description"`
	OpenAPIVersion string        `json:"openapi_version,omitempty" jsonschema:"The openapi version string to write (default 3.0.3)"`
	NoInfo         bool          `json:"no_info,omitempty"         jsonschema:"Omit info-level issues from the response"`
	Output         string        `json:"output,omitempty"          jsonschema:"File path to write the document to instead of returning it inline"`
}

type issueSummary struct {
	Severity    string `json:"severity"`
	Path        string `json:"path"`
	Message     string `json:"message"`
	Field       string `json:"field,omitempty"`
	OperationID string `json:"operation_id,omitempty"`
}

type generateOutput struct {
	Stats        openapi.Stats  `json:"stats"`
	WarningCount int            `json:"warning_count"`
	InfoCount    int            `json:"info_count"`
	Issues       []issueSummary `json:"issues,omitempty"`
	Format       string         `json:"format"`
	Document     string         `json:"document,omitempty"`
	WrittenTo    string         `json:"written_to,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	format := strings.ToLower(input.Format)
	if format == "" {
		format = "yaml"
	}
	if format != "yaml" && format != "json" {
		return errResult(fmt.Errorf("invalid format %q; valid values: yaml, json", input.Format)), generateOutput{}, nil
	}

	api, err := input.Manifest.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	result := builder.New(
		builder.WithTitle(input.Title),
		builder.WithVersion(input.Version),
		builder.WithDescription(input.Description),
		builder.WithOpenAPIVersion(input.OpenAPIVersion),
		builder.WithConcurrency(cfg.Concurrency),
	).Build(api)

	output := generateOutput{
		Stats:        result.Document.Stats(),
		WarningCount: result.WarningCount(),
		InfoCount:    result.InfoCount(),
		Format:       format,
		Issues:       makeSlice[issueSummary](len(result.Issues)),
	}
	for _, i := range result.Issues {
		if input.NoInfo && i.Severity == builder.SeverityInfo {
			continue
		}
		s := issueSummary{Severity: i.Severity.String(), Path: i.Path, Message: i.Message, Field: i.Field}
		if i.Operation != nil {
			s.OperationID = i.Operation.OperationID
		}
		output.Issues = append(output.Issues, s)
	}

	var data []byte
	if format == "json" {
		data, err = openapi.MarshalJSON(result.Document)
	} else {
		data, err = openapi.MarshalYAML(result.Document)
	}
	if err != nil {
		return errResult(fmt.Errorf("failed to marshal document: %w", err)), generateOutput{}, nil
	}

	if input.Output != "" {
		if _, err := fileutil.WriteDocument(input.Output, data); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), generateOutput{}, nil
		}
		output.WrittenTo = input.Output
		return nil, output, nil
	}
	output.Document = string(data)
	return nil, output, nil
}
