package blob

import (
	"context"
	"fmt"
	"io"

	"go-vault/internal/config"
)

// UploadTarget is handed to a caller that uploads raw bytes out-of-band.
// BlobRef is the opaque handle the metadata layer stores.
type UploadTarget struct {
	BlobRef string `json:"blob_ref"`
	URL     string `json:"url"`
}

// Store is the blob storage port. Metadata never leaves the document store;
// only raw content lives behind a Store.
type Store interface {
	IssueUploadTarget(ctx context.Context) (*UploadTarget, error)
	Save(ctx context.Context, blobRef string, r io.Reader, size int64) error
	// ResolveURL returns a fetchable URL for the blob, or "" when the
	// blob does not exist.
	ResolveURL(ctx context.Context, blobRef string) (string, error)
	// Delete removes the blob. A missing blob is not an error, so a
	// retried purge converges.
	Delete(ctx context.Context, blobRef string) error
}

// NewStore selects the storage driver from config.
func NewStore(cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case "local":
		return NewLocalStore(cfg)
	case "s3":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}
