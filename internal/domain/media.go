package domain

import (
	"context"
	"fmt"
	"time"
)

// BackendType identifies which storage backend produced an upload record.
type BackendType string

const (
	BackendFilesystem BackendType = "filesystem"
	BackendS3         BackendType = "s3"
	BackendAzure      BackendType = "azure"
	BackendImgur      BackendType = "imgur"
)

// ParseBackendType validates a configured backend name.
// An unknown value is a startup error, never a runtime fallback.
func ParseBackendType(s string) (BackendType, error) {
	switch BackendType(s) {
	case BackendFilesystem, BackendS3, BackendAzure, BackendImgur:
		return BackendType(s), nil
	default:
		return "", fmt.Errorf("unknown media backend %q (expected one of: filesystem, s3, azure, imgur)", s)
	}
}

// BackendLocator is the backend-specific address of a stored object.
// Exactly one variant field is set, matching the upload's BackendType;
// it is only serialized at the metadata-store boundary and must never be
// interpreted by a different backend.
type BackendLocator struct {
	Filesystem *FilesystemLocator `bson:"filesystem,omitempty" json:"filesystem,omitempty"`
	S3         *S3Locator         `bson:"s3,omitempty" json:"s3,omitempty"`
	Azure      *AzureLocator      `bson:"azure,omitempty" json:"azure,omitempty"`
	Imgur      *ImgurLocator      `bson:"imgur,omitempty" json:"imgur,omitempty"`
}

// FilesystemLocator addresses a file on the local disk.
type FilesystemLocator struct {
	Path string `bson:"path" json:"path"`
}

// S3Locator addresses an object in an S3-compatible bucket.
type S3Locator struct {
	Bucket string `bson:"bucket" json:"bucket"`
	Key    string `bson:"key" json:"key"`
}

// AzureLocator addresses a blob in an Azure storage container.
type AzureLocator struct {
	Container string `bson:"container" json:"container"`
	Blob      string `bson:"blob" json:"blob"`
}

// ImgurLocator holds what Imgur returned for an uploaded image. The
// delete hash is the only handle Imgur gives us to remove the image.
type ImgurLocator struct {
	DeleteHash string `bson:"delete_hash" json:"delete_hash"`
	Link       string `bson:"link" json:"link"`
}

// Variant returns which backend type this locator belongs to, or an
// error if no variant (or more than one) is populated.
func (l BackendLocator) Variant() (BackendType, error) {
	var (
		found BackendType
		n     int
	)
	if l.Filesystem != nil {
		found, n = BackendFilesystem, n+1
	}
	if l.S3 != nil {
		found, n = BackendS3, n+1
	}
	if l.Azure != nil {
		found, n = BackendAzure, n+1
	}
	if l.Imgur != nil {
		found, n = BackendImgur, n+1
	}
	if n != 1 {
		return "", fmt.Errorf("backend locator has %d variants set, want exactly 1", n)
	}
	return found, nil
}

// MediaUpload links a stored file to its owner, its note and the
// physical location the active backend wrote it to. The ID doubles as
// the object name inside the backend.
type MediaUpload struct {
	ID          string         `bson:"_id" json:"id"`
	BackendType BackendType    `bson:"backend_type" json:"backend_type"`
	Locator     BackendLocator `bson:"locator" json:"locator"`
	FileURL     string         `bson:"file_url" json:"file_url"`
	Username    string         `bson:"username" json:"username"`
	NoteID      string         `bson:"note_id" json:"note_id"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
}

// MediaUploadDTO is the transport-facing projection of a single upload.
type MediaUploadDTO struct {
	URL       string    `json:"url"`
	NoteID    string    `json:"noteId"`
	CreatedAt time.Time `json:"createdAt"`
	Username  string    `json:"userName"`
}

// MediaUploadURLDTO carries just the public link of a fresh upload.
type MediaUploadURLDTO struct {
	Link string `json:"link"`
}

// MediaBackend is the save/delete contract every storage variant
// implements. A failed SaveFile must leave no retrievable object.
// DeleteFile idempotence is backend-dependent and not guaranteed by
// this contract.
type MediaBackend interface {
	SaveFile(ctx context.Context, file []byte, id string) (url string, locator BackendLocator, err error)
	DeleteFile(ctx context.Context, id string, locator BackendLocator) error
	Type() BackendType
}

// UploadRepository defines the durable metadata store for uploads.
// Single-record operations are atomic; there is no transaction spanning
// a backend call and a metadata mutation.
type UploadRepository interface {
	Create(ctx context.Context, upload *MediaUpload) error
	GetByID(ctx context.Context, id string) (*MediaUpload, error)
	ListByUsername(ctx context.Context, username string) ([]*MediaUpload, error)
	ListByNote(ctx context.Context, noteID string) ([]*MediaUpload, error)
	Delete(ctx context.Context, id string) error
}
