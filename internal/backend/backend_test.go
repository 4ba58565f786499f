package backend

import (
	"context"
	"testing"

	"github.com/quillpad/mediastore/internal/config"
	"github.com/quillpad/mediastore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilesystem(t *testing.T) {
	b, err := New(context.Background(), config.MediaConfig{
		Backend:    domain.BackendFilesystem,
		Filesystem: config.FilesystemConfig{UploadsPath: t.TempDir()},
	})
	require.NoError(t, err)
	assert.IsType(t, &FilesystemBackend{}, b)
	assert.Equal(t, domain.BackendFilesystem, b.Type())
}

func TestNewImgur(t *testing.T) {
	b, err := New(context.Background(), config.MediaConfig{
		Backend: domain.BackendImgur,
		Imgur:   config.ImgurConfig{ClientID: "test-client"},
	})
	require.NoError(t, err)
	assert.IsType(t, &ImgurBackend{}, b)
	assert.Equal(t, domain.BackendImgur, b.Type())
}

func TestNewUnknownBackend(t *testing.T) {
	// config.Load rejects this earlier; the factory still refuses to
	// fall through silently.
	_, err := New(context.Background(), config.MediaConfig{Backend: "carrier-pigeon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown media backend")
}
