// Package scaffold materializes the filesystem artifacts the application
// expects: package marker files, working directories and the local
// environment file. Every operation is idempotent; nothing here ever
// truncates or deletes an existing file.
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Entry records the outcome of a single materialization.
type Entry struct {
	Path    string
	Created bool // false when the artifact already existed
}

// EnsureMarkers creates the empty marker files that make the application's
// source directories importable packages. Parent directories are created as
// needed. An existing marker is left untouched, whatever its contents.
func EnsureMarkers(root string, markers []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(markers))

	for _, rel := range markers {
		path := filepath.Join(root, rel)

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return entries, fmt.Errorf("create marker parent for %s: %w", rel, err)
		}

		// O_EXCL makes "already exists" explicit instead of truncating.
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		switch {
		case err == nil:
			if err := f.Close(); err != nil {
				return entries, fmt.Errorf("close marker %s: %w", rel, err)
			}

			entries = append(entries, Entry{Path: rel, Created: true})
		case errors.Is(err, fs.ErrExist):
			entries = append(entries, Entry{Path: rel, Created: false})
		default:
			return entries, fmt.Errorf("create marker %s: %w", rel, err)
		}
	}

	return entries, nil
}

// EnsureDirs makes sure the working directories (data, logs, notebooks)
// exist. Creating an existing directory is a no-op.
func EnsureDirs(root string, dirs []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(dirs))

	for _, rel := range dirs {
		path := filepath.Join(root, rel)

		info, err := os.Stat(path)
		if err == nil {
			if !info.IsDir() {
				return entries, fmt.Errorf("working directory %s exists but is not a directory", rel)
			}

			entries = append(entries, Entry{Path: rel, Created: false})

			continue
		}

		if err := os.MkdirAll(path, 0o755); err != nil {
			return entries, fmt.Errorf("create directory %s: %w", rel, err)
		}

		entries = append(entries, Entry{Path: rel, Created: true})
	}

	return entries, nil
}
