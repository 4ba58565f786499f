package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/quillpad/mediastore/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCacheRepository(client), mr
}

func TestCacheSetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	upload := &domain.MediaUpload{
		ID:          "01TESTULID",
		BackendType: domain.BackendFilesystem,
		Locator: domain.BackendLocator{
			Filesystem: &domain.FilesystemLocator{Path: "/data/uploads/01TESTULID"},
		},
		FileURL:   "/uploads/01TESTULID",
		Username:  "alice",
		NoteID:    "abc123",
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	require.NoError(t, cache.Set(ctx, "upload:id:01TESTULID", upload, time.Minute))

	var got domain.MediaUpload
	require.NoError(t, cache.Get(ctx, "upload:id:01TESTULID", &got))
	assert.Equal(t, upload.ID, got.ID)
	assert.Equal(t, upload.Username, got.Username)
	require.NotNil(t, got.Locator.Filesystem)
	assert.Equal(t, upload.Locator.Filesystem.Path, got.Locator.Filesystem.Path)
}

func TestCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	var got domain.MediaUpload
	err := cache.Get(context.Background(), "upload:id:nope", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	var got string
	assert.ErrorIs(t, cache.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestCacheDelete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))

	var got string
	assert.ErrorIs(t, cache.Get(ctx, "k", &got), ErrCacheMiss)

	// Deleting nothing is fine
	assert.NoError(t, cache.Delete(ctx))
}
