package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileKV stores each key as a file under baseDir.
// Layout: <baseDir>/<key>.json
type FileKV struct {
	baseDir string
	mu      sync.Mutex
}

// NewFileKV creates a store rooted at baseDir. The directory is created on first write.
func NewFileKV(baseDir string) (*FileKV, error) {
	if baseDir == "" {
		return nil, errors.New("file storage: empty base dir")
	}
	return &FileKV{baseDir: baseDir}, nil
}

// Dir returns the directory values are stored in.
func (s *FileKV) Dir() string {
	return s.baseDir
}

// Path returns the file that holds key.
func (s *FileKV) Path(key string) string {
	// Normalize: keep keys as single path elements
	normalized := strings.NewReplacer("/", "_", "\\", "_", " ", "-").Replace(key)
	return filepath.Join(s.baseDir, normalized+".json")
}

func (s *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(b), true, nil
}

// Set writes value to a temp file and renames it over the old one.
func (s *FileKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.baseDir, err)
	}
	path := s.Path(key)
	tmp, err := os.CreateTemp(s.baseDir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *FileKV) Close() error { return nil }
