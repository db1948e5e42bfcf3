// Package fileutil writes generated documents to disk.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DocumentMode is the permission mode for written OpenAPI documents, which
// are meant to be read by other tools and users.
const DocumentMode os.FileMode = 0o644

// WriteDocument writes data to path and returns the absolute path written.
// An existing target must be a regular file; symlinks and directories are
// refused so a generated document never lands somewhere other than named.
func WriteDocument(path string, data []byte) (string, error) {
	target, err := documentTarget(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(target, data, DocumentMode); err != nil { //nolint:gosec // G306 - documents are meant to be world readable
		return "", fmt.Errorf("fileutil: writing %s: %w", path, err)
	}
	return target, nil
}

// documentTarget resolves path to a clean absolute path and checks what, if
// anything, already exists there.
func documentTarget(path string) (string, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("fileutil: resolving %s: %w", path, err)
	}
	info, err := os.Lstat(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return target, nil
	case err != nil:
		return "", fmt.Errorf("fileutil: checking %s: %w", target, err)
	case info.Mode()&fs.ModeSymlink != 0:
		return "", fmt.Errorf("fileutil: refusing to write document through symlink %s", target)
	case info.IsDir():
		return "", fmt.Errorf("fileutil: %s is a directory", target)
	}
	return target, nil
}
