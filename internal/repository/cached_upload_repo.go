package repository

import (
	"context"
	"time"

	"github.com/quillpad/mediastore/internal/domain"
)

const (
	uploadByIDKeyPrefix = "upload:id:"
	uploadCacheTTL      = 5 * time.Minute
)

// CachedUploadRepository wraps an UploadRepository with Redis caching
// for single-record lookups. List queries pass through: an upload set
// changes on every save and caching it buys little.
type CachedUploadRepository struct {
	uploads domain.UploadRepository
	cache   *RedisCacheRepository
}

// NewCachedUploadRepository creates a new cached upload repository
func NewCachedUploadRepository(uploads domain.UploadRepository, cache *RedisCacheRepository) *CachedUploadRepository {
	return &CachedUploadRepository{
		uploads: uploads,
		cache:   cache,
	}
}

// GetByID retrieves an upload record by id with caching
func (r *CachedUploadRepository) GetByID(ctx context.Context, id string) (*domain.MediaUpload, error) {
	key := uploadByIDKeyPrefix + id

	// Try cache first
	var upload domain.MediaUpload
	if err := r.cache.Get(ctx, key, &upload); err == nil {
		return &upload, nil
	}

	// Cache miss - fetch from the durable store
	result, err := r.uploads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Store in cache (ignore cache errors)
	_ = r.cache.Set(ctx, key, result, uploadCacheTTL)

	return result, nil
}

// Create persists a record and primes the lookup cache
func (r *CachedUploadRepository) Create(ctx context.Context, upload *domain.MediaUpload) error {
	if err := r.uploads.Create(ctx, upload); err != nil {
		return err
	}
	_ = r.cache.Set(ctx, uploadByIDKeyPrefix+upload.ID, upload, uploadCacheTTL)
	return nil
}

// Delete removes a record and invalidates its cache entry
func (r *CachedUploadRepository) Delete(ctx context.Context, id string) error {
	if err := r.uploads.Delete(ctx, id); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, uploadByIDKeyPrefix+id)
	return nil
}

// === Pass-through methods (no caching) ===

func (r *CachedUploadRepository) ListByUsername(ctx context.Context, username string) ([]*domain.MediaUpload, error) {
	return r.uploads.ListByUsername(ctx, username)
}

func (r *CachedUploadRepository) ListByNote(ctx context.Context, noteID string) ([]*domain.MediaUpload, error) {
	return r.uploads.ListByNote(ctx, noteID)
}
