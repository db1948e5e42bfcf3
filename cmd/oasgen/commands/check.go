package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/oasgen/builder"
	"github.com/erraggy/oasgen/internal/cliutil"
	"github.com/erraggy/oasgen/openapi"
)

// CheckFlags contains flags for the check command
type CheckFlags struct {
	Format string
	Strict bool
	NoInfo bool
}

// checkIssue is the structured form of a build issue.
type checkIssue struct {
	Severity    string `json:"severity" yaml:"severity"`
	Path        string `json:"path" yaml:"path"`
	Message     string `json:"message" yaml:"message"`
	Field       string `json:"field,omitempty" yaml:"field,omitempty"`
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
}

// checkReport is the structured output of the check command.
type checkReport struct {
	Manifest     string        `json:"manifest" yaml:"manifest"`
	Title        string        `json:"title,omitempty" yaml:"title,omitempty"`
	Version      string        `json:"version,omitempty" yaml:"version,omitempty"`
	Handlers     int           `json:"handlers" yaml:"handlers"`
	Stats        openapi.Stats `json:"stats" yaml:"stats"`
	WarningCount int           `json:"warningCount" yaml:"warningCount"`
	InfoCount    int           `json:"infoCount" yaml:"infoCount"`
	Issues       []checkIssue  `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
func SetupCheckFlags() (*flag.FlagSet, *CheckFlags) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := &CheckFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Strict, "strict", false, "fail when the build reports warnings")
	fs.BoolVar(&flags.NoInfo, "no-info", false, "hide info-level issues")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasgen check [flags] <manifest|->\n\n")
		Writef(fs.Output(), "Build a manifest without writing a document and report what the build would produce.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasgen check api.yaml\n")
		Writef(fs.Output(), "  oasgen check --strict api.yaml\n")
		Writef(fs.Output(), "  oasgen check --format json api.yaml | jq '.warningCount'\n")
	}

	return fs, flags
}

// HandleCheck executes the check command
func HandleCheck(args []string) error {
	fs, flags := SetupCheckFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("check command requires exactly one manifest path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	manifestPath := fs.Arg(0)
	api, err := LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}
	result := builder.New().Build(api)

	if flags.Format == FormatText {
		st := result.Document.Stats()
		Writef(stdout, "Manifest: %s\n", FormatManifestPath(manifestPath))
		Writef(stdout, "Title: %s\n", result.Document.Info.Title)
		Writef(stdout, "Handlers: %d\n", api.HandlerCount())
		Writef(stdout, "Paths: %d\n", st.Paths)
		Writef(stdout, "Operations: %d\n", st.Operations)
		Writef(stdout, "Schemas: %d\n", st.Schemas)
		if cliutil.WriteIssues(stdout, result.Issues, minimumSeverity(flags.NoInfo)) == 0 {
			Writef(stdout, "\nNo issues.\n")
		}
	} else {
		if err := OutputStructured(report(manifestPath, api.HandlerCount(), result, flags.NoInfo), flags.Format); err != nil {
			return err
		}
	}

	if flags.Strict && result.WarningCount() > 0 {
		return fmt.Errorf("strict mode: build reported %d warning(s)", result.WarningCount())
	}
	return nil
}

func report(manifestPath string, handlers int, result *builder.Result, noInfo bool) checkReport {
	r := checkReport{
		Manifest:     FormatManifestPath(manifestPath),
		Title:        result.Document.Info.Title,
		Version:      result.Document.Info.Version,
		Handlers:     handlers,
		Stats:        result.Document.Stats(),
		WarningCount: result.WarningCount(),
		InfoCount:    result.InfoCount(),
	}
	for _, i := range result.Issues {
		if noInfo && i.Severity == builder.SeverityInfo {
			continue
		}
		ci := checkIssue{Severity: i.Severity.String(), Path: i.Path, Message: i.Message, Field: i.Field}
		if i.Operation != nil {
			ci.OperationID = i.Operation.OperationID
		}
		r.Issues = append(r.Issues, ci)
	}
	return r
}
