package backend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/quillpad/mediastore/internal/config"
	"github.com/quillpad/mediastore/internal/domain"
)

const imgurBaseURL = "https://api.imgur.com/3"

// ImgurBackend hosts uploads on Imgur. We do not control the provider,
// so deletion is best effort: Imgur only honors it while the delete
// hash from the original upload response is still valid.
type ImgurBackend struct {
	clientID   string
	baseURL    string
	httpClient *http.Client
}

// imgurUploadRequest is the request body for POST /image
type imgurUploadRequest struct {
	Image string `json:"image"`
	Type  string `json:"type"`
	Name  string `json:"name"`
}

// imgurResponse represents the Imgur API response envelope
type imgurResponse struct {
	Status  int  `json:"status"`
	Success bool `json:"success"`
	Data    struct {
		Link       string `json:"link"`
		DeleteHash string `json:"deletehash"`
		Error      string `json:"error"`
	} `json:"data"`
}

// NewImgurBackend creates a new Imgur API client
func NewImgurBackend(cfg config.ImgurConfig) *ImgurBackend {
	return &ImgurBackend{
		clientID: cfg.ClientID,
		baseURL:  imgurBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SaveFile posts the image to Imgur and returns the hosted link. The
// delete hash from the response goes into the locator.
func (b *ImgurBackend) SaveFile(ctx context.Context, file []byte, id string) (string, domain.BackendLocator, error) {
	reqBody := imgurUploadRequest{
		Image: base64.StdEncoding.EncodeToString(file),
		Type:  "base64",
		Name:  id,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", domain.BackendLocator{}, &domain.BackendError{Backend: domain.BackendImgur, Op: "save", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/image", bytes.NewReader(payload))
	if err != nil {
		return "", domain.BackendLocator{}, &domain.BackendError{Backend: domain.BackendImgur, Op: "save", Err: err}
	}
	req.Header.Set("Authorization", "Client-ID "+b.clientID)
	req.Header.Set("Content-Type", "application/json")

	var parsed imgurResponse
	if err := b.do(req, &parsed); err != nil {
		return "", domain.BackendLocator{}, &domain.BackendError{Backend: domain.BackendImgur, Op: "save", Err: err}
	}
	if !parsed.Success || parsed.Data.Link == "" {
		return "", domain.BackendLocator{}, &domain.BackendError{
			Backend: domain.BackendImgur,
			Op:      "save",
			Err:     fmt.Errorf("imgur rejected upload (status %d): %s", parsed.Status, parsed.Data.Error),
		}
	}

	locator := domain.BackendLocator{
		Imgur: &domain.ImgurLocator{
			DeleteHash: parsed.Data.DeleteHash,
			Link:       parsed.Data.Link,
		},
	}
	return parsed.Data.Link, locator, nil
}

// DeleteFile asks Imgur to remove the image via its delete hash. A
// locator without a delete hash is skipped: nothing we can do about the
// remote copy, and failing here would strand the metadata record.
func (b *ImgurBackend) DeleteFile(ctx context.Context, id string, locator domain.BackendLocator) error {
	if locator.Imgur == nil || locator.Imgur.DeleteHash == "" {
		log.Printf("Warning: no imgur delete hash for upload %s, skipping remote deletion", id)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, b.baseURL+"/image/"+locator.Imgur.DeleteHash, nil)
	if err != nil {
		return &domain.BackendError{Backend: domain.BackendImgur, Op: "delete", Err: err}
	}
	req.Header.Set("Authorization", "Client-ID "+b.clientID)

	var parsed imgurResponse
	if err := b.do(req, &parsed); err != nil {
		return &domain.BackendError{Backend: domain.BackendImgur, Op: "delete", Err: err}
	}
	if !parsed.Success {
		return &domain.BackendError{
			Backend: domain.BackendImgur,
			Op:      "delete",
			Err:     fmt.Errorf("imgur rejected deletion (status %d): %s", parsed.Status, parsed.Data.Error),
		}
	}
	return nil
}

func (b *ImgurBackend) Type() domain.BackendType {
	return domain.BackendImgur
}

// do executes the request and decodes the Imgur response envelope.
func (b *ImgurBackend) do(req *http.Request, out *imgurResponse) error {
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read imgur response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unexpected imgur response (HTTP %d): %w", resp.StatusCode, err)
	}
	return nil
}
