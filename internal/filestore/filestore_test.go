package filestore

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetmonkey/wardrobe-go/internal/conf"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	settings := conf.TestSettings()
	settings.Storage.UploadPath = filepath.Join(root, "uploads")
	settings.Storage.TempPath = filepath.Join(root, "uploads", "temp")
	settings.Storage.CropPath = filepath.Join(root, "uploads", "crops")
	settings.Storage.OutfitPath = filepath.Join(root, "uploads", "outfits")

	store, err := New(settings)
	require.NoError(t, err)
	return store
}

func TestSaveTempAndDelete(t *testing.T) {
	store := newTestStore(t)

	path, err := store.SaveTemp([]byte("image-bytes"))
	require.NoError(t, err)
	assert.True(t, store.TempExists(path))

	data, err := store.ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)

	store.DeleteTemp(path)
	assert.False(t, store.TempExists(path))

	// Deleting again is not an error.
	store.DeleteTemp(path)
}

func TestDistinctTempPathsPerSession(t *testing.T) {
	store := newTestStore(t)

	a, err := store.SaveTemp([]byte("a"))
	require.NoError(t, err)
	b, err := store.SaveTemp([]byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPromoteMovesTempToOutfits(t *testing.T) {
	store := newTestStore(t)

	tempPath, err := store.SaveTemp([]byte("photo"))
	require.NoError(t, err)

	permanent, err := store.Promote(tempPath)
	require.NoError(t, err)

	assert.False(t, store.TempExists(tempPath))
	assert.Contains(t, permanent, "outfits")
	data, err := os.ReadFile(permanent)
	require.NoError(t, err)
	assert.Equal(t, []byte("photo"), data)
}

func TestSaveCrop(t *testing.T) {
	store := newTestStore(t)

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	path, err := store.SaveCrop(img, "Navy Blazer!")
	require.NoError(t, err)

	assert.Contains(t, filepath.Base(path), "navy-blazer")
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestCleanupTempRemovesOldFiles(t *testing.T) {
	store := newTestStore(t)

	oldPath, err := store.SaveTemp([]byte("old"))
	require.NoError(t, err)
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	freshPath, err := store.SaveTemp([]byte("fresh"))
	require.NoError(t, err)

	removed := store.CleanupTemp(time.Hour)

	assert.Equal(t, 1, removed)
	assert.False(t, store.TempExists(oldPath))
	assert.True(t, store.TempExists(freshPath))
}
