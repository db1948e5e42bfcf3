// Package commands provides CLI command handlers for oasgen.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasgen/descriptor"
	"github.com/erraggy/oasgen/internal/cliutil"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/openapi"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin,
// or writing to stdout when given as an output path.
const StdinFilePath = "-"

// DefaultOutput is where generate writes the document when -o is not given.
const DefaultOutput = "openapi.yaml"

// Standard streams, swapped out by tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// ValidateOutputFormat validates a report format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return &oaserrors.ConfigError{
			Option:  "format",
			Value:   format,
			Message: fmt.Sprintf("valid formats: %s, %s, %s", FormatText, FormatJSON, FormatYAML),
		}
	}
	return nil
}

// DocumentFormat picks the serialization for a generated document. An
// explicit format must be yaml or json; otherwise a .json output path selects
// JSON and everything else YAML.
func DocumentFormat(format, output string) (string, error) {
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	case "":
	default:
		return "", &oaserrors.ConfigError{
			Option:  "format",
			Value:   format,
			Message: fmt.Sprintf("valid document formats: %s, %s", FormatYAML, FormatJSON),
		}
	}
	if strings.EqualFold(filepath.Ext(output), ".json") {
		return FormatJSON, nil
	}
	return FormatYAML, nil
}

// MarshalDocument marshals a document to bytes in the specified format.
func MarshalDocument(doc *openapi.Document, format string) ([]byte, error) {
	if format == FormatJSON {
		return openapi.MarshalJSON(doc)
	}
	return openapi.MarshalYAML(doc)
}

// OutputStructured writes data to stdout in the specified format (json or yaml).
func OutputStructured(data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(stdout, "%s\n", strings.TrimRight(string(out), "\n"))
	return nil
}

// LoadManifest loads the manifest at path, or from stdin when path is "-".
func LoadManifest(path string) (*descriptor.API, error) {
	if path == StdinFilePath {
		return descriptor.Load(stdin, FormatManifestPath(path))
	}
	return descriptor.LoadFile(path)
}

// FormatManifestPath returns a display-friendly path for the manifest.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatManifestPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// ValidateOutputPath checks that writing outputPath does not clobber the
// manifest it was generated from.
func ValidateOutputPath(outputPath, inputPath string) error {
	if inputPath == StdinFilePath {
		return nil
	}
	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	absInput, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("invalid input path %s: %w", inputPath, err)
	}
	if absOutput == absInput {
		return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
	}
	return nil
}

// newLogger returns the builder logger for the verbosity flags. Verbose logs
// debug records as text on stderr; quiet discards everything.
func newLogger(verbose, quiet bool) descriptor.Logger {
	if quiet || !verbose {
		return descriptor.NopLogger{}
	}
	h := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return descriptor.NewSlogAdapter(slog.New(h))
}
