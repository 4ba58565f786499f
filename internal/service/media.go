package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
	"github.com/quillpad/mediastore/internal/domain"
)

// allowedMimeTypes is the fixed set of image formats accepted for
// upload. Checked against the sniffed type, never the client-declared
// one.
var allowedMimeTypes = []string{
	"image/apng",
	"image/bmp",
	"image/gif",
	"image/heif",
	"image/heic",
	"image/heif-sequence",
	"image/heic-sequence",
	"image/jpeg",
	"image/png",
	"image/svg+xml",
	"image/tiff",
	"image/webp",
}

// MediaService orchestrates uploads: it validates content, talks to the
// active storage backend and keeps the metadata store consistent with
// it. It is the only caller of both.
type MediaService struct {
	backend        domain.MediaBackend
	uploads        domain.UploadRepository
	notes          domain.NoteService
	users          domain.UserService
	maxUploadBytes int64
}

// NewMediaService creates a new media service around the given backend
// and collaborators.
func NewMediaService(
	backend domain.MediaBackend,
	uploads domain.UploadRepository,
	notes domain.NoteService,
	users domain.UserService,
	maxUploadSizeMB int64,
) *MediaService {
	return &MediaService{
		backend:        backend,
		uploads:        uploads,
		notes:          notes,
		users:          users,
		maxUploadBytes: maxUploadSizeMB * 1024 * 1024,
	}
}

// SaveFile validates and stores a file for a note, then records who
// uploaded it and where it lives. The metadata record is only written
// after the backend reports a durable save, so no record ever points at
// a file that was never stored. The converse (backend write succeeded,
// metadata write failed) leaves an orphaned object in the backend.
func (s *MediaService) SaveFile(ctx context.Context, file []byte, username string, noteIDOrAlias string) (string, error) {
	note, err := s.notes.GetNoteByIDOrAlias(ctx, noteIDOrAlias)
	if err != nil {
		return "", err
	}
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if s.maxUploadBytes > 0 && int64(len(file)) > s.maxUploadBytes {
		return "", &domain.ClientError{Reason: fmt.Sprintf("file exceeds maximum upload size of %d bytes", s.maxUploadBytes)}
	}
	if err := validateMimeType(file); err != nil {
		return "", err
	}

	id := ulid.Make().String()
	url, locator, err := s.backend.SaveFile(ctx, file, id)
	if err != nil {
		return "", err
	}

	upload := &domain.MediaUpload{
		ID:          id,
		BackendType: s.backend.Type(),
		Locator:     locator,
		FileURL:     url,
		Username:    user.Username,
		NoteID:      note.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.uploads.Create(ctx, upload); err != nil {
		// The physical object is now orphaned. Accepted gap: the
		// backend and the metadata store share no transaction.
		log.Printf("Warning: upload %s written to %s backend but metadata write failed: %v", id, s.backend.Type(), err)
		return "", fmt.Errorf("failed to persist upload record: %w", err)
	}

	return url, nil
}

// DeleteFile removes an upload and its metadata record, in that order.
// Only the owner may delete; if the backend refuses, the record is
// retained so no metadata ever points at a missing object.
func (s *MediaService) DeleteFile(ctx context.Context, id string, username string) error {
	upload, err := s.uploads.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if upload.Username != username {
		log.Printf("Warning: %s tried to delete upload %s owned by %s", username, id, upload.Username)
		return fmt.Errorf("upload %s is not owned by %s: %w", id, username, domain.ErrForbidden)
	}

	if err := s.backend.DeleteFile(ctx, id, upload.Locator); err != nil {
		return err
	}
	return s.uploads.Delete(ctx, id)
}

// FindUploadByID looks up a single upload record.
func (s *MediaService) FindUploadByID(ctx context.Context, id string) (*domain.MediaUpload, error) {
	return s.uploads.GetByID(ctx, id)
}

// ListUploadsByUser returns all uploads owned by the user, newest
// first. An empty result is not an error.
func (s *MediaService) ListUploadsByUser(ctx context.Context, user *domain.User) ([]*domain.MediaUpload, error) {
	return s.uploads.ListByUsername(ctx, user.Username)
}

// ListUploadsByNote returns all uploads attached to the note, newest
// first. An empty result is not an error.
func (s *MediaService) ListUploadsByNote(ctx context.Context, note *domain.Note) ([]*domain.MediaUpload, error) {
	return s.uploads.ListByNote(ctx, note.ID)
}

// ToMediaUploadDTO projects an upload record for the transport layer.
func (s *MediaService) ToMediaUploadDTO(upload *domain.MediaUpload) domain.MediaUploadDTO {
	return domain.MediaUploadDTO{
		URL:       upload.FileURL,
		NoteID:    upload.NoteID,
		CreatedAt: upload.CreatedAt,
		Username:  upload.Username,
	}
}

// ToMediaUploadURLDTO wraps a bare public URL.
func (s *MediaService) ToMediaUploadURLDTO(url string) domain.MediaUploadURLDTO {
	return domain.MediaUploadURLDTO{Link: url}
}

// validateMimeType sniffs the true content type of the bytes and checks
// it against the allow-list. Runs before any backend write, so rejected
// uploads never touch storage.
func validateMimeType(file []byte) error {
	mtype := mimetype.Detect(file)
	if mtype.Is("application/octet-stream") {
		return &domain.ClientError{Reason: "could not detect file type"}
	}
	for _, allowed := range allowedMimeTypes {
		if mtype.Is(allowed) {
			return nil
		}
	}
	return &domain.ClientError{Reason: fmt.Sprintf("MIME type %s not allowed", mtype.String())}
}
