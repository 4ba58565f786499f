package backend

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/quillpad/mediastore/internal/config"
	"github.com/quillpad/mediastore/internal/domain"
)

// AzureBackend stores uploads as blobs in an Azure storage container.
type AzureBackend struct {
	client     *azblob.Client
	container  string
	serviceURL string
}

// NewAzureBackend authenticates with a shared key credential and makes
// sure the container exists.
func NewAzureBackend(ctx context.Context, cfg config.AzureConfig) (*AzureBackend, error) {
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net", cfg.AccountName)

	cred, err := azblob.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid azure credentials: %w", err)
	}
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL+"/", cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure client: %w", err)
	}

	if _, err := client.CreateContainer(ctx, cfg.Container, nil); err != nil {
		if !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return nil, fmt.Errorf("failed to create container %s: %w", cfg.Container, err)
		}
	}

	return &AzureBackend{
		client:     client,
		container:  cfg.Container,
		serviceURL: serviceURL,
	}, nil
}

// SaveFile uploads the blob under its id and returns the public URL.
func (b *AzureBackend) SaveFile(ctx context.Context, file []byte, id string) (string, domain.BackendLocator, error) {
	_, err := b.client.UploadBuffer(ctx, b.container, id, file, nil)
	if err != nil {
		return "", domain.BackendLocator{}, &domain.BackendError{Backend: domain.BackendAzure, Op: "save", Err: err}
	}

	locator := domain.BackendLocator{
		Azure: &domain.AzureLocator{Container: b.container, Blob: id},
	}
	return fmt.Sprintf("%s/%s/%s", b.serviceURL, b.container, id), locator, nil
}

// DeleteFile removes the blob named by the locator.
func (b *AzureBackend) DeleteFile(ctx context.Context, id string, locator domain.BackendLocator) error {
	if locator.Azure == nil {
		return &domain.BackendError{
			Backend: domain.BackendAzure,
			Op:      "delete",
			Err:     fmt.Errorf("locator for %s has no azure variant", id),
		}
	}
	_, err := b.client.DeleteBlob(ctx, locator.Azure.Container, locator.Azure.Blob, nil)
	if err != nil {
		return &domain.BackendError{Backend: domain.BackendAzure, Op: "delete", Err: err}
	}
	return nil
}

func (b *AzureBackend) Type() domain.BackendType {
	return domain.BackendAzure
}
