package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/financer-app/apiserver/internal/storage"
	"github.com/financer-app/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T, dir string) *FileStore {
	t.Helper()
	local, err := storage.NewLocalClient(dir)
	require.NoError(t, err)
	require.NoError(t, local.EnsureBucket(context.Background()))
	return NewFileStore(local, "users.json")
}

func TestFileStoreInitializesOnFirstRead(t *testing.T) {
	dir := t.TempDir()
	s := newFileStore(t, dir)

	docs, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)

	// The first read initializes the collection on disk.
	data, err := os.ReadFile(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestFileStoreInsertAndGet(t *testing.T) {
	s := newFileStore(t, t.TempDir())

	doc := types.NewUserDocument("Ann", "ann@x.com", "hash")
	require.NoError(t, s.Insert(context.Background(), doc))

	got, err := s.GetByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, "hash", got.Password)

	// Exact match only: the caller normalizes keys.
	_, err = s.GetByEmail(context.Background(), "Ann@X.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreInsertDuplicate(t *testing.T) {
	s := newFileStore(t, t.TempDir())

	require.NoError(t, s.Insert(context.Background(), types.NewUserDocument("Ann", "ann@x.com", "hash")))
	err := s.Insert(context.Background(), types.NewUserDocument("Ann 2", "ann@x.com", "hash2"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first := newFileStore(t, dir)

	require.NoError(t, first.Insert(context.Background(), types.NewUserDocument("Ann", "ann@x.com", "hash")))
	require.NoError(t, first.Insert(context.Background(), types.NewUserDocument("Bob", "bob@x.com", "hash2")))

	second := newFileStore(t, dir)
	docs, err := second.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "ann@x.com", docs[0].Email)
	assert.Equal(t, "bob@x.com", docs[1].Email)
}

func TestFileStoreUpdate(t *testing.T) {
	s := newFileStore(t, t.TempDir())
	require.NoError(t, s.Insert(context.Background(), types.NewUserDocument("Ann", "ann@x.com", "hash")))

	updated, err := s.Update(context.Background(), "ann@x.com", func(doc types.UserDocument) (types.UserDocument, error) {
		doc.Name = "Ann B."
		doc.Email = "evil@x.com" // must not take: the key is immutable
		return doc, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann B.", updated.Name)
	assert.Equal(t, "ann@x.com", updated.Email)

	got, err := s.GetByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann B.", got.Name)
}

func TestFileStoreUpdateNotFound(t *testing.T) {
	s := newFileStore(t, t.TempDir())

	_, err := s.Update(context.Background(), "nobody@x.com", func(doc types.UserDocument) (types.UserDocument, error) {
		return doc, nil
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreCorruptCollection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("not json"), 0o644))

	s := newFileStore(t, dir)
	_, err := s.List(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
