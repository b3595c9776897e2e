package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aidetect/image-detector/internal/logger"
)

// fileBlobStore is the local-filesystem implementation of [BlobStore].
// Uploaded images are written under a single directory; the locator stored in
// the detection record is the file path relative to the working directory.
type fileBlobStore struct {
	dir    string
	logger *logger.Logger
}

// NewFileBlobStore constructs a filesystem [BlobStore] rooted at dir,
// creating the directory if it does not exist.
func NewFileBlobStore(dir string, logger *logger.Logger) (BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating upload directory %s: %w", dir, err)
	}

	logger.Debug().Str("dir", dir).Msg("creating file blob store")
	return &fileBlobStore{
		dir:    dir,
		logger: logger,
	}, nil
}

// Save writes data to a file named key inside the store directory and returns
// the file path as the locator. The context is checked before the write so a
// cancelled request does not leave a file behind.
func (f *fileBlobStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	// filepath.Base strips any directory components smuggled in via the
	// original filename.
	locator := filepath.Join(f.dir, filepath.Base(key))

	if err := os.WriteFile(locator, data, 0o644); err != nil {
		log.Err(err).
			Str("func", "fileBlobStore.Save").
			Str("locator", locator).
			Msg("failed to write image file")
		return "", fmt.Errorf("error writing image file: %w", err)
	}

	return locator, nil
}

// Delete removes the file behind locator. A missing file is reported as
// [ErrBlobNotFound] so callers can treat it as best-effort success.
func (f *fileBlobStore) Delete(ctx context.Context, locator string) error {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(locator); err != nil {
		if os.IsNotExist(err) {
			return ErrBlobNotFound
		}

		log.Err(err).
			Str("func", "fileBlobStore.Delete").
			Str("locator", locator).
			Msg("failed to remove image file")
		return fmt.Errorf("error removing image file: %w", err)
	}

	return nil
}
