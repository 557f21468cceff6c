package blob

import (
	"context"

	"github.com/awantoch/kwanixflow/config"
	"github.com/awantoch/kwanixflow/constants"
	"github.com/awantoch/kwanixflow/utils"
)

// BlobStore is the interface for pluggable blob storage backends.
type BlobStore interface {
	Put(ctx context.Context, data []byte, mime, filename string) (url string, err error)
	Get(ctx context.Context, url string) ([]byte, error)
}

// See filesystem.go and s3.go for driver implementations.

// NewDefaultBlobStore returns the BlobStore selected by cfg. The "none" driver
// (and a nil cfg) disables archiving and returns a nil store.
func NewDefaultBlobStore(ctx context.Context, cfg *config.BlobConfig) (BlobStore, error) {
	if cfg == nil || cfg.Driver == "" || cfg.Driver == constants.BlobDriverNone {
		return nil, nil
	}
	switch cfg.Driver {
	case constants.BlobDriverFilesystem:
		dir := config.DefaultBlobDir
		if cfg.Directory != "" {
			dir = cfg.Directory
		}
		return NewFilesystemBlobStore(dir)
	case constants.BlobDriverS3:
		if cfg.Bucket == "" || cfg.Region == "" {
			return nil, utils.Errorf("s3 driver requires bucket and region")
		}
		return NewS3BlobStore(ctx, cfg.Bucket, cfg.Region)
	default:
		return nil, utils.Errorf("unsupported blob driver: %s", cfg.Driver)
	}
}
