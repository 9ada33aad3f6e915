package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndDelete(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalFileStorage(base, "/uploads")
	require.NoError(t, err)

	url, err := storage.Save(strings.NewReader("image bytes"), "photo.jpg", "equipment_images")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/equipment_images/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	relative := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(base, filepath.FromSlash(relative)))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))

	require.NoError(t, storage.Delete(url))
	_, err = os.Stat(filepath.Join(base, filepath.FromSlash(relative)))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteMissingFileIsNoError(t *testing.T) {
	storage, err := NewLocalFileStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.NoError(t, storage.Delete("/uploads/equipment_images/2024/01/01/gone.jpg"))
}

func TestDeleteForeignURLFails(t *testing.T) {
	storage, err := NewLocalFileStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.Error(t, storage.Delete("https://elsewhere.example/file.jpg"))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	storage, err := NewLocalFileStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	first, err := storage.Save(strings.NewReader("a"), "same.png", "equipment_images")
	require.NoError(t, err)
	second, err := storage.Save(strings.NewReader("b"), "same.png", "equipment_images")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
