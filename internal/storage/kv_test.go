package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns a fresh instance of every KV implementation.
func backends(t *testing.T) map[string]KV {
	t.Helper()
	fileKV, err := NewFileKV(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	sqliteKV, err := NewSQLiteKV(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqliteKV.Close() })
	return map[string]KV{
		BackendFile:   fileKV,
		BackendSQLite: sqliteKV,
		BackendMemory: NewMemoryKV(),
	}
}

func TestKV_GetSet(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := kv.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set(ctx, "k", "v1"))
			v, ok, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v1", v)

			require.NoError(t, kv.Set(ctx, "k", "v2"))
			v, _, err = kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v2", v)

			require.NoError(t, kv.Set(ctx, "empty", ""))
			v, ok, err = kv.Get(ctx, "empty")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestFileKV_Layout(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	require.NoError(t, kv.Set(context.Background(), "flashCardDecks", "{}"))
	b, err := os.ReadFile(filepath.Join(dir, "flashCardDecks.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))

	assert.Equal(t, filepath.Join(dir, "a_b.json"), kv.Path("a/b"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileKV_EmptyDir(t *testing.T) {
	_, err := NewFileKV("")
	assert.Error(t, err)
}

func TestSQLiteKV_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "decks.db")

	kv, err := NewSQLiteKV(ctx, path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, DefaultKey, `{"Bio":[]}`))
	require.NoError(t, kv.Close())

	kv, err = NewSQLiteKV(ctx, path)
	require.NoError(t, err)
	defer kv.Close()
	v, ok, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"Bio":[]}`, v)
}

func TestSQLiteKV_DSNWithQuery(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "decks.db") + "?mode=rwc"

	kv, err := NewSQLiteKV(ctx, dsn)
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Set(ctx, DefaultKey, `{}`))
	v, ok, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{}`, v)

	var timeout int
	require.NoError(t, kv.db.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}

func TestWithPragma(t *testing.T) {
	assert.Equal(t, "x.db?_pragma=busy_timeout(5000)", withPragma("x.db", "busy_timeout(5000)"))
	assert.Equal(t, "file:x.db?mode=rwc&_pragma=busy_timeout(5000)", withPragma("file:x.db?mode=rwc", "busy_timeout(5000)"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := Open(ctx, Options{Backend: BackendFile, DataDir: dir})
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv)
	assert.Equal(t, dir, kv.(*FileKV).Dir())

	kv, err = Open(ctx, Options{Backend: BackendSQLite, DataDir: dir})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteKV{}, kv)
	require.NoError(t, kv.Close())
	assert.FileExists(t, filepath.Join(dir, DefaultSQLiteFile))

	kv, err = Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	_, err = Open(ctx, Options{Backend: "redis"})
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestDefaultDataDir_EnvOverride(t *testing.T) {
	t.Setenv(DataDirEnv, "/tmp/flashdeck-test")
	dir, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/flashdeck-test", dir)
}
