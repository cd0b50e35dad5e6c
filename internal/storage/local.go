package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// FileStore persists raw uploaded files. Save returns the storage path
// recorded on the sentence row; Open resolves that path back to the
// bytes for download.
type FileStore interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

type localStore struct {
	dir string
}

// NewLocalStore stores files in a flat directory. Two uploads whose
// sanitized names collide overwrite each other (last write wins); the
// sentence rows keep their own paths either way.
func NewLocalStore(dir string) (FileStore, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &localStore{dir: absDir}, nil
}

func (s *localStore) Save(_ context.Context, filename string, data []byte) (string, error) {
	path := filepath.Join(s.dir, SanitizeFilename(filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

func (s *localStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return f, nil
}

// SanitizeFilename strips path separators and anything outside
// letters, digits, dot, dash and underscore; spaces become
// underscores. An input that sanitizes to nothing falls back to
// "arquivo".
func SanitizeFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))

	var b strings.Builder
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}

	name := strings.Trim(b.String(), "._")
	if name == "" {
		return "arquivo"
	}
	return name
}
