package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
)

func newAssetDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "brands"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brands", "nike.png"), []byte("png"), 0644))
	return dir
}

func TestFileAssetStore_Exists(t *testing.T) {
	dir := newAssetDir(t)
	store := NewFileAssetStore(dir)
	ctx := context.Background()

	assert.Equal(t, dir, store.Root())
	assert.True(t, store.Exists(ctx, domain.NewAssetHandle("brands/nike.png")))
	assert.False(t, store.Exists(ctx, domain.NewAssetHandle("brands/adidas.png")))
	assert.False(t, store.Exists(ctx, domain.NewAssetHandle("brands")), "directories are not assets")
	assert.False(t, store.Exists(ctx, domain.AssetHandle{}))
}

func TestFileAssetStore_ExistsIsCached(t *testing.T) {
	dir := newAssetDir(t)
	store := NewFileAssetStore(dir)
	ctx := context.Background()
	handle := domain.NewAssetHandle("brands/nike.png")

	require.True(t, store.Exists(ctx, handle))
	require.NoError(t, os.Remove(filepath.Join(dir, "brands", "nike.png")))
	assert.True(t, store.Exists(ctx, handle))
}

func TestFileAssetStore_Open(t *testing.T) {
	dir := newAssetDir(t)
	store := NewFileAssetStore(dir)
	ctx := context.Background()

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"relative", "brands/nike.png", filepath.Join(abs, "brands", "nike.png"), false},
		{"leading slash", "/brands/nike.png", filepath.Join(abs, "brands", "nike.png"), false},
		{"redundant segments", "brands/../brands/./nike.png", filepath.Join(abs, "brands", "nike.png"), false},
		{"parent traversal", "../secret.png", "", true},
		{"nested traversal", "brands/../../secret.png", "", true},
		{"root itself", ".", "", true},
		{"missing file", "brands/none.png", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Open(ctx, tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileAssetStore_NoRoot(t *testing.T) {
	store := NewFileAssetStore("")

	assert.False(t, store.Exists(context.Background(), domain.NewAssetHandle("brands/nike.png")))
	_, err := store.Open(context.Background(), "brands/nike.png")
	assert.Error(t, err)
}
