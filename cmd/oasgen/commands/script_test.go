package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
	"golang.org/x/tools/txtar"
)

// captureStreams points the package streams at buffers for the rest of the test.
func captureStreams(t *testing.T, input string) (out, errOut *bytes.Buffer) {
	t.Helper()
	savedIn, savedOut, savedErr := stdin, stdout, stderr
	t.Cleanup(func() { stdin, stdout, stderr = savedIn, savedOut, savedErr })

	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	stdin, stdout, stderr = strings.NewReader(input), out, errOut
	return out, errOut
}

func runCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command")
	}
	switch args[0] {
	case "generate":
		return HandleGenerate(args[1:])
	case "check":
		return HandleCheck(args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// TestScripts runs every testdata/*.txtar archive. The archive comment is the
// command line; files under want/ are expectations and everything else is
// written to the working directory first.
//
//	want/error        substring of the returned error
//	want/stdout.json  JSON equal to stdout
//	want/<file>       YAML or JSON equal to <file> after the command runs
func TestScripts(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, file := range archives {
		ar, err := txtar.ParseFile(file)
		require.NoError(t, err, file)

		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			dir := t.TempDir()
			want := make(map[string][]byte)
			for _, f := range ar.Files {
				if name, ok := strings.CutPrefix(f.Name, "want/"); ok {
					want[name] = f.Data
					continue
				}
				require.NoError(t, os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0o644))
			}
			t.Chdir(dir)
			out, errOut := captureStreams(t, "")

			err := runCommand(strings.Fields(string(ar.Comment)))

			if msg, ok := want["error"]; ok {
				require.Error(t, err)
				assert.Contains(t, err.Error(), strings.TrimSpace(string(msg)))
			} else {
				require.NoError(t, err, errOut.String())
			}
			for name, data := range want {
				switch name {
				case "error":
				case "stdout.json":
					assert.JSONEq(t, string(data), out.String())
				default:
					got, err := os.ReadFile(filepath.Join(dir, name))
					require.NoError(t, err)
					assertSameDocument(t, data, got)
				}
			}
		})
	}
}

// assertSameDocument compares two YAML (or JSON) documents by content.
func assertSameDocument(t *testing.T, want, got []byte) {
	t.Helper()
	var w, g any
	require.NoError(t, yaml.Unmarshal(want, &w))
	require.NoError(t, yaml.Unmarshal(got, &g), string(got))
	assert.Equal(t, w, g)
}
