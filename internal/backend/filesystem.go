package backend

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/quillpad/mediastore/internal/config"
	"github.com/quillpad/mediastore/internal/domain"
)

// FilesystemBackend stores uploads on the local disk. Files are served
// by the reverse proxy (or the transport layer) under /uploads.
type FilesystemBackend struct {
	uploadsPath string
}

// NewFilesystemBackend creates the uploads directory if it is missing.
func NewFilesystemBackend(cfg config.FilesystemConfig) (*FilesystemBackend, error) {
	if err := os.MkdirAll(cfg.UploadsPath, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory %s: %w", cfg.UploadsPath, err)
	}
	return &FilesystemBackend{uploadsPath: cfg.UploadsPath}, nil
}

// SaveFile writes the file under the uploads directory. The write goes
// to a temp file first and is renamed into place, so a failed save
// leaves no retrievable object.
func (b *FilesystemBackend) SaveFile(ctx context.Context, file []byte, id string) (string, domain.BackendLocator, error) {
	target := filepath.Join(b.uploadsPath, id)

	tmp, err := os.CreateTemp(b.uploadsPath, id+".tmp*")
	if err != nil {
		return "", domain.BackendLocator{}, &domain.BackendError{Backend: domain.BackendFilesystem, Op: "save", Err: err}
	}
	if _, err := tmp.Write(file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", domain.BackendLocator{}, &domain.BackendError{Backend: domain.BackendFilesystem, Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", domain.BackendLocator{}, &domain.BackendError{Backend: domain.BackendFilesystem, Op: "save", Err: err}
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", domain.BackendLocator{}, &domain.BackendError{Backend: domain.BackendFilesystem, Op: "save", Err: err}
	}

	locator := domain.BackendLocator{
		Filesystem: &domain.FilesystemLocator{Path: target},
	}
	return path.Join("/uploads", id), locator, nil
}

// DeleteFile removes the file at the path recorded in the locator.
func (b *FilesystemBackend) DeleteFile(ctx context.Context, id string, locator domain.BackendLocator) error {
	if locator.Filesystem == nil {
		return &domain.BackendError{
			Backend: domain.BackendFilesystem,
			Op:      "delete",
			Err:     fmt.Errorf("locator for %s has no filesystem variant", id),
		}
	}
	if err := os.Remove(locator.Filesystem.Path); err != nil {
		return &domain.BackendError{Backend: domain.BackendFilesystem, Op: "delete", Err: err}
	}
	return nil
}

func (b *FilesystemBackend) Type() domain.BackendType {
	return domain.BackendFilesystem
}
