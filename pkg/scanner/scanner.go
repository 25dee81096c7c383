// Package scanner walks scan directories and emits FileDescriptors for
// every file whose extension is known to the language registry.
package scanner

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/metricmancer/metricmancer/pkg/models"
)

// Scanner walks a set of root directories and emits FileDescriptors.
type Scanner struct {
	// Extensions is the set of recognized file extensions (including the
	// leading dot), e.g. ".go", ".py". Files with any other extension are
	// skipped.
	Extensions map[string]bool
}

// New creates a Scanner recognizing the given extensions.
func New(extensions map[string]bool) *Scanner {
	return &Scanner{Extensions: extensions}
}

// Scan walks each directory and returns every recognized file found.
// A directory that cannot be resolved to an absolute path, or that is not
// actually a directory, is skipped with a debug-level warning; no error is
// ever returned to the caller. Order is unspecified but deterministic for a
// given filesystem state (filepath.WalkDir visits lexical order).
func (s *Scanner) Scan(directories []string) []models.FileDescriptor {
	var out []models.FileDescriptor

	for _, dir := range directories {
		absRoot, err := filepath.Abs(dir)
		if err != nil {
			slog.Debug("scanner: could not resolve directory", "dir", dir, "error", err)
			continue
		}

		info, err := os.Stat(absRoot)
		if err != nil || !info.IsDir() {
			slog.Debug("scanner: not a directory, skipping", "dir", absRoot)
			continue
		}

		out = append(out, s.scanOne(absRoot)...)
	}

	return out
}

func (s *Scanner) scanOne(absRoot string) []models.FileDescriptor {
	var out []models.FileDescriptor

	_ = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: yield nothing for it and keep going.
			slog.Debug("scanner: walk error", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if !s.Extensions[ext] {
			return nil
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil
		}

		out = append(out, models.FileDescriptor{
			AbsolutePath: absPath,
			RepoRoot:     absRoot,
			Extension:    ext,
		})
		return nil
	})

	return out
}
