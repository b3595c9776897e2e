// Package store implements the persistence layer: PostgreSQL-backed
// repositories for users and detections, and pluggable blob stores for the
// uploaded image bytes.
package store

import (
	"context"

	"github.com/aidetect/image-detector/internal/config"
	"github.com/aidetect/image-detector/internal/logger"
)

// Storages aggregates every persistence component and is injected into the
// service layer as a unit.
type Storages struct {
	UserRepository      UserRepository
	DetectionRepository DetectionRepository
	BlobStore           BlobStore
}

// NewStorages wires the repositories to the shared database handle and picks
// the blob backend: S3-compatible object storage when an endpoint is
// configured, the local filesystem otherwise.
func NewStorages(ctx context.Context, db *DB, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	storages := &Storages{
		UserRepository:      NewUserRepository(db, logger),
		DetectionRepository: NewDetectionRepository(db, logger),
	}

	if cfg.S3.Endpoint != "" {
		blob, err := NewMinioBlobStore(ctx, cfg.S3, logger)
		if err != nil {
			return nil, err
		}
		storages.BlobStore = blob
		return storages, nil
	}

	blob, err := NewFileBlobStore(cfg.Files.UploadDir, logger)
	if err != nil {
		return nil, err
	}
	storages.BlobStore = blob

	return storages, nil
}
