package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/pkg/storage"
)

func TestLocalPutGetDelete(t *testing.T) {
	ctx := context.Background()
	d := storage.NewLocalDisk(t.TempDir())

	require.NoError(t, d.Put(ctx, "carts/abc.json", []byte(`{"id":"abc"}`)))
	data, err := d.Get(ctx, "carts/abc.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc"}`, string(data))

	require.NoError(t, d.Put(ctx, "carts/abc.json", []byte(`{"id":"abc","items":[]}`)))
	data, err = d.Get(ctx, "carts/abc.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), "items")

	ok, err := d.Exists(ctx, "carts/abc.json")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, d.Delete(ctx, "carts/abc.json"))
	_, err = d.Get(ctx, "carts/abc.json")
	assert.ErrorIs(t, err, storage.ErrNotExist)
	assert.ErrorIs(t, d.Delete(ctx, "carts/abc.json"), storage.ErrNotExist)
}

func TestLocalCreateIsExclusive(t *testing.T) {
	ctx := context.Background()
	d := storage.NewLocalDisk(t.TempDir())

	require.NoError(t, d.Create(ctx, "users/ada@example.com.json", []byte(`{}`)))
	assert.ErrorIs(t, d.Create(ctx, "users/ada@example.com.json", []byte(`{}`)), storage.ErrExist)
}

func TestLocalFiles(t *testing.T) {
	ctx := context.Background()
	d := storage.NewLocalDisk(t.TempDir())

	names, err := d.Files(ctx, "tokens")
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, d.Put(ctx, "tokens/b.json", []byte(`{}`)))
	require.NoError(t, d.Put(ctx, "tokens/a.json", []byte(`{}`)))
	require.NoError(t, os.WriteFile(filepath.Join(d.Root(), "tokens", ".tmp-123"), nil, 0o644))

	names, err = d.Files(ctx, "tokens")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json"}, names)
}

func TestLocalPathsStayInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d := storage.NewLocalDisk(filepath.Join(root, "data"))

	require.NoError(t, d.Put(ctx, "../../escape.json", []byte(`{}`)))
	_, err := os.Stat(filepath.Join(root, "escape.json"))
	assert.True(t, os.IsNotExist(err))

	ok, err := d.Exists(ctx, "escape.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestManagerRegisterDisk(t *testing.T) {
	d := storage.NewLocalDisk(t.TempDir())
	storage.RegisterDisk("memory-test", d)

	got, err := storage.Use("memory-test")
	require.NoError(t, err)
	assert.Same(t, d, got)

	_, err = storage.Use("nope")
	assert.Error(t, err)
}
