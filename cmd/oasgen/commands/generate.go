package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/oasgen/builder"
	"github.com/erraggy/oasgen/internal/cliutil"
	"github.com/erraggy/oasgen/internal/fileutil"
	"github.com/erraggy/oasgen/internal/severity"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output         string
	Format         string
	Title          string
	APIVersion     string
	Description    string
	OpenAPIVersion string
	ContentType    string
	Concurrency    int
	Strict         bool
	Skip           bool
	NoInfo         bool
	Verbose        bool
	Quiet          bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", DefaultOutput, "output file path ('-' for stdout)")
	fs.StringVar(&flags.Output, "output", DefaultOutput, "output file path ('-' for stdout)")
	fs.StringVar(&flags.Format, "format", "", "document format: yaml or json (default: from output extension)")
	fs.StringVar(&flags.Title, "title", "", "override the API title")
	fs.StringVar(&flags.APIVersion, "api-version", "", "override the API version")
	fs.StringVar(&flags.Description, "description", "", "override the API description")
	fs.StringVar(&flags.OpenAPIVersion, "openapi-version", "", "openapi version string to write (default 3.0.3)")
	fs.StringVar(&flags.ContentType, "content-type", "", "media type for request and response bodies (default application/json)")
	fs.IntVar(&flags.Concurrency, "concurrency", 1, "number of operations to assemble at once")
	fs.BoolVar(&flags.Strict, "strict", false, "fail when the build reports warnings")
	fs.BoolVar(&flags.Skip, "skip", false, "do nothing and exit 0 (for build scripts that toggle generation)")
	fs.BoolVar(&flags.NoInfo, "no-info", false, "hide info-level issues")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log build progress to stderr")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no diagnostic output")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no diagnostic output")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasgen generate [flags] <manifest|->\n\n")
		Writef(fs.Output(), "Generate an OpenAPI document from a handler manifest.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasgen generate api.yaml\n")
		Writef(fs.Output(), "  oasgen generate -o openapi.json api.yaml\n")
		Writef(fs.Output(), "  oasgen generate --title \"Items API\" --api-version 2.0.0 api.yaml\n")
		Writef(fs.Output(), "  cat api.yaml | oasgen generate -q -o - -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Document generated\n")
		Writef(fs.Output(), "  1    Manifest invalid, output not writable, or warnings in --strict mode\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Skip {
		if !flags.Quiet {
			Writef(stderr, "Skipping document generation\n")
		}
		return nil
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one manifest path or '-' for stdin")
	}
	manifestPath := fs.Arg(0)

	format, err := DocumentFormat(flags.Format, flags.Output)
	if err != nil {
		return err
	}
	if flags.Output != StdinFilePath {
		if err := ValidateOutputPath(flags.Output, manifestPath); err != nil {
			return err
		}
	}

	api, err := LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}
	if api.HandlerCount() == 0 && !flags.Quiet {
		Writef(stderr, "Warning: %s declares no handlers; the document has no paths\n", FormatManifestPath(manifestPath))
	}

	result := builder.New(
		builder.WithTitle(flags.Title),
		builder.WithVersion(flags.APIVersion),
		builder.WithDescription(flags.Description),
		builder.WithOpenAPIVersion(flags.OpenAPIVersion),
		builder.WithContentType(flags.ContentType),
		builder.WithConcurrency(flags.Concurrency),
		builder.WithLogger(newLogger(flags.Verbose, flags.Quiet)),
	).Build(api)

	if !flags.Quiet {
		cliutil.WriteIssues(stderr, result.Issues, minimumSeverity(flags.NoInfo))
	}
	if flags.Strict && result.WarningCount() > 0 {
		return fmt.Errorf("strict mode: build reported %d warning(s)", result.WarningCount())
	}

	data, err := MarshalDocument(result.Document, format)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	if flags.Output == StdinFilePath {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("writing document: %w", err)
		}
		return nil
	}
	if _, err := fileutil.WriteDocument(flags.Output, data); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if !flags.Quiet {
		st := result.Document.Stats()
		Writef(stderr, "Wrote %s (%d paths, %d operations, %d schemas)\n", flags.Output, st.Paths, st.Operations, st.Schemas)
	}
	return nil
}

func minimumSeverity(noInfo bool) severity.Severity {
	if noInfo {
		return severity.SeverityWarning
	}
	return severity.SeverityInfo
}
