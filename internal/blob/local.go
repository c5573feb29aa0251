package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-vault/internal/config"

	"github.com/google/uuid"
)

// LocalStore keeps blobs on the local filesystem under cfg.FSPath and
// serves them through the static FSURL prefix.
type LocalStore struct {
	dir     string
	baseURL string
	fsURL   string
}

func NewLocalStore(cfg *config.Config) (*LocalStore, error) {
	if _, err := os.Stat(cfg.FSPath); os.IsNotExist(err) {
		if err := os.MkdirAll(cfg.FSPath, 0755); err != nil {
			return nil, err
		}
	}
	return &LocalStore{
		dir:     cfg.FSPath,
		baseURL: cfg.BaseURL,
		fsURL:   cfg.FSURL,
	}, nil
}

func (s *LocalStore) IssueUploadTarget(ctx context.Context) (*UploadTarget, error) {
	ref := uuid.NewString()
	return &UploadTarget{
		BlobRef: ref,
		URL:     fmt.Sprintf("%s/api/blobs/%s", s.baseURL, ref),
	}, nil
}

// Save writes the bytes behind a previously issued ref. Refs are one-shot
// upload handles: an existing blob is never overwritten, and only refs in
// the UUID shape this store issues are accepted.
func (s *LocalStore) Save(ctx context.Context, blobRef string, r io.Reader, size int64) error {
	if _, err := uuid.Parse(blobRef); err != nil {
		return fmt.Errorf("invalid blob ref %q", blobRef)
	}

	dst, err := os.OpenFile(filepath.Join(s.dir, blobRef), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("blob %s already has content", blobRef)
		}
		return fmt.Errorf("creating blob file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return fmt.Errorf("writing blob file: %w", err)
	}
	return nil
}

func (s *LocalStore) ResolveURL(ctx context.Context, blobRef string) (string, error) {
	if _, err := os.Stat(filepath.Join(s.dir, blobRef)); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return fmt.Sprintf("%s%s/%s", s.baseURL, s.fsURL, blobRef), nil
}

func (s *LocalStore) Delete(ctx context.Context, blobRef string) error {
	if err := os.Remove(filepath.Join(s.dir, blobRef)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting blob file: %w", err)
	}
	return nil
}
