package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/gitmeta/pkg/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), ".gmeta"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	rec := store.Record{Mode: 0o644, Mtime: 1000, Atime: 2000}
	require.NoError(t, s.Put("a.txt", rec))

	got, err := s.Get("a.txt")
	require.NoError(t, err)
	assert.Equal(t, uint32(0o644), got.Mode)
	assert.Equal(t, int64(1000), got.Mtime)
	assert.Equal(t, int64(2000), got.Atime)
	assert.Equal(t, "a.txt", got.Path)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.Get("missing.txt")
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.False(t, s.Contains("missing.txt"))
}

func TestStore_PutOverwrites(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	require.NoError(t, s.Put("a.txt", store.Record{Mode: 0o644, Mtime: 1, Atime: 1}))
	require.NoError(t, s.Put("a.txt", store.Record{Mode: 0o755, Mtime: 2, Atime: 2}))

	got, err := s.Get("a.txt")
	require.NoError(t, err)
	assert.Equal(t, uint32(0o755), got.Mode)
	assert.Equal(t, int64(2), got.Mtime)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "overwrite must not create a second row")
}

func TestStore_IdenticalPutIsNoOp(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	rec := store.Record{Mode: 0o600, Mtime: 42, Atime: 43}
	require.NoError(t, s.Put("a.txt", rec))

	before := s.Mutations()
	require.NoError(t, s.Put("a.txt", rec))
	assert.Equal(t, before, s.Mutations(), "field-identical put must not write")

	require.NoError(t, s.Put("a.txt", store.Record{Mode: 0o600, Mtime: 42, Atime: 99}))
	assert.Equal(t, before+1, s.Mutations(), "changed field must write")
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	require.NoError(t, s.Put("a.txt", store.Record{Mode: 0o644}))
	require.NoError(t, s.Delete("a.txt"))

	assert.False(t, s.Contains("a.txt"))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	// Absence is not an error, and not a durable write either.
	before := s.Mutations()
	require.NoError(t, s.Delete("a.txt"))
	assert.Equal(t, before, s.Mutations())
}

func TestStore_ForEach(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	want := map[string]int64{"a.txt": 1, "b/c.txt": 2, "d.bin": 3}
	for path, mtime := range want {
		require.NoError(t, s.Put(path, store.Record{Mode: 0o644, Mtime: mtime}))
	}

	seen := make(map[string]int64)
	require.NoError(t, s.ForEach(func(rec store.Record) error {
		seen[rec.Path] = rec.Mtime
		return nil
	}))
	assert.Equal(t, want, seen)

	// Iteration is restartable.
	count := 0
	require.NoError(t, s.ForEach(func(store.Record) error {
		count++
		return nil
	}))
	assert.Equal(t, len(want), count)
}

func TestStore_CommitPersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".gmeta")

	s, err := store.Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Put("a.txt", store.Record{Mode: 0o644, Mtime: 7, Atime: 8}))
	require.NoError(t, s.Commit())
	require.NoError(t, s.Close())

	reopened, err := store.Open(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, reopened.Close()) }()

	got, err := reopened.Get("a.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Mtime)

	n, err := reopened.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStore_OpenBadLocation(t *testing.T) {
	t.Parallel()

	_, err := store.Open(filepath.Join(t.TempDir(), "no", "such", "dir", ".gmeta"))
	require.ErrorIs(t, err, store.ErrUnavailable)
}
