// Package backend provides the storage variants behind the media
// service. One variant is constructed at startup and injected into the
// service; there is no per-request backend switching.
package backend

import (
	"context"
	"fmt"

	"github.com/quillpad/mediastore/internal/config"
	"github.com/quillpad/mediastore/internal/domain"
)

// New constructs the backend selected by cfg.Backend. The switch covers
// every parseable backend type; config.Load already rejects unknown
// values, so the default branch only fires on a programming error.
func New(ctx context.Context, cfg config.MediaConfig) (domain.MediaBackend, error) {
	switch cfg.Backend {
	case domain.BackendFilesystem:
		return NewFilesystemBackend(cfg.Filesystem)
	case domain.BackendS3:
		return NewS3Backend(ctx, cfg.S3)
	case domain.BackendAzure:
		return NewAzureBackend(ctx, cfg.Azure)
	case domain.BackendImgur:
		return NewImgurBackend(cfg.Imgur), nil
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Backend)
	}
}
