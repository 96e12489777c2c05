package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// KV is a string key-value store with whole-value replace semantics.
type KV interface {
	// Get returns the value for key. ok is false if the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set replaces the value for key.
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	// DataDirEnv overrides the default data directory (for testing).
	DataDirEnv = "FLASHDECK_DATA_DIR"
	// DefaultDataBase is the data directory relative to the user's home.
	DefaultDataBase = ".flashdeck"
	// DefaultSQLiteFile is the database file name used when no DSN is given.
	DefaultSQLiteFile = "flashdeck.db"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	DataDir string // file backend root, and default location of the SQLite file
	DSN     string // SQLite path; ":memory:" for an in-memory database
}

// Open returns the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Backend {
	case BackendFile, "":
		dir, err := resolveDataDir(opts.DataDir)
		if err != nil {
			return nil, err
		}
		kv, err := NewFileKV(dir)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case BackendSQLite:
		dsn := opts.DSN
		if dsn == "" {
			dir, err := resolveDataDir(opts.DataDir)
			if err != nil {
				return nil, err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
			dsn = filepath.Join(dir, DefaultSQLiteFile)
		}
		kv, err := NewSQLiteKV(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

// DefaultDataDir returns $FLASHDECK_DATA_DIR, or ~/.flashdeck.
func DefaultDataDir() (string, error) {
	return resolveDataDir("")
}

func resolveDataDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if env := os.Getenv(DataDirEnv); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDataBase), nil
}
