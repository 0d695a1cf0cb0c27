package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumigen/lumigen/application/port/outbound"
)

func TestDiskStore_StoreAndResolve(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "abc.png", []byte("png-bytes")))

	data, err := store.Resolve(ctx, "abc.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestDiskStore_ResolveMissing(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Resolve(context.Background(), "missing.png")
	assert.ErrorIs(t, err, outbound.ErrAssetNotFound)
}

func TestDiskStore_OverwriteReplacesContent(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "abc.png", []byte("first")))
	require.NoError(t, store.Store(ctx, "abc.png", []byte("second")))

	data, err := store.Resolve(ctx, "abc.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestDiskStore_RejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	for _, id := range []string{"", "../escape.png", "nested/asset.png", "/etc/passwd"} {
		assert.Error(t, store.Store(ctx, id, []byte("x")), "id %q", id)
		_, err := store.Resolve(ctx, id)
		assert.Error(t, err, "id %q", id)
	}

	// Nothing escaped the asset directory.
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "static")
	_, err := NewDiskStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
