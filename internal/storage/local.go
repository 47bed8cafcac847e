// Package storage owns server-local file persistence for submission
// uploads. Permanent files live under a single configured directory and
// are namespaced by submission id, so concurrent submissions never collide.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tvqhuy/Classboard/config"
)

type LocalStore struct {
	dir string
}

func NewLocalStore(cfg *config.Config) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", cfg.Upload.Dir, err)
	}
	return &LocalStore{dir: cfg.Upload.Dir}, nil
}

// ValidateFilename rejects empty names and names carrying path elements.
// Stored paths are always server-derived.
func ValidateFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("file name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("file name must not contain path separators")
	}
	return nil
}

// Save copies r into permanent storage under a name namespaced by the
// submission id and returns the stored path and size.
func (s *LocalStore) Save(submissionID uuid.UUID, filename string, r io.Reader) (string, int64, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("submission_%s_%s", submissionID, filename))
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return path, size, nil
}

func (s *LocalStore) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (s *LocalStore) Remove(path string) error {
	return os.Remove(path)
}

// TempDir is a scoped scratch directory for buffering uploads before they
// are promoted to permanent storage. Close removes it with everything
// inside; callers defer it on every exit path.
type TempDir struct {
	dir string
}

func NewTempDir() (*TempDir, error) {
	dir, err := os.MkdirTemp("", "intake-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return &TempDir{dir: dir}, nil
}

func (t *TempDir) Save(filename string, r io.Reader) (string, error) {
	path := filepath.Join(t.dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to buffer file %s: %w", filename, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to buffer file %s: %w", filename, err)
	}
	return path, nil
}

func (t *TempDir) Open(path string) (*os.File, error) {
	return os.Open(path)
}

func (t *TempDir) Close() error {
	return os.RemoveAll(t.dir)
}
