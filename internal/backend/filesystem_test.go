package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/quillpad/mediastore/internal/config"
	"github.com/quillpad/mediastore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilesystemBackend(t *testing.T) (*FilesystemBackend, string) {
	t.Helper()
	dir := t.TempDir()
	b, err := NewFilesystemBackend(config.FilesystemConfig{UploadsPath: dir})
	require.NoError(t, err)
	return b, dir
}

func TestFilesystemSaveFile(t *testing.T) {
	b, dir := newTestFilesystemBackend(t)
	content := []byte("fake image bytes")

	url, locator, err := b.SaveFile(context.Background(), content, "01TESTULID")
	require.NoError(t, err)

	assert.Equal(t, "/uploads/01TESTULID", url)
	require.NotNil(t, locator.Filesystem)
	assert.Equal(t, filepath.Join(dir, "01TESTULID"), locator.Filesystem.Path)

	stored, err := os.ReadFile(locator.Filesystem.Path)
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFilesystemDeleteFile(t *testing.T) {
	b, _ := newTestFilesystemBackend(t)

	_, locator, err := b.SaveFile(context.Background(), []byte("x"), "01TESTULID")
	require.NoError(t, err)

	require.NoError(t, b.DeleteFile(context.Background(), "01TESTULID", locator))
	_, err = os.Stat(locator.Filesystem.Path)
	assert.True(t, os.IsNotExist(err))

	// Deleting again fails: the contract does not promise idempotence
	err = b.DeleteFile(context.Background(), "01TESTULID", locator)
	var backendErr *domain.BackendError
	assert.ErrorAs(t, err, &backendErr)
}

func TestFilesystemDeleteWrongLocator(t *testing.T) {
	b, _ := newTestFilesystemBackend(t)

	err := b.DeleteFile(context.Background(), "01TESTULID", domain.BackendLocator{
		S3: &domain.S3Locator{Bucket: "media", Key: "01TESTULID"},
	})
	var backendErr *domain.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, domain.BackendFilesystem, backendErr.Backend)
}

func TestFilesystemType(t *testing.T) {
	b, _ := newTestFilesystemBackend(t)
	assert.Equal(t, domain.BackendFilesystem, b.Type())
}
