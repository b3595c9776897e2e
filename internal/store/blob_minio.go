package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/aidetect/image-detector/internal/config"
	"github.com/aidetect/image-detector/internal/logger"
)

// minioBlobStore is the S3-compatible implementation of [BlobStore]. The
// locator stored in the detection record is the object key within the
// configured bucket.
type minioBlobStore struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewMinioBlobStore constructs an object-storage [BlobStore] from cfg and
// ensures the target bucket exists.
func NewMinioBlobStore(ctx context.Context, cfg config.S3, logger *logger.Logger) (BlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating minio client: %w", err)
	}

	store := &minioBlobStore{
		client: client,
		bucket: cfg.Bucket,
		logger: logger,
	}

	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}

	logger.Debug().Str("bucket", cfg.Bucket).Str("endpoint", cfg.Endpoint).Msg("creating minio blob store")
	return store, nil
}

// ensureBucket creates the bucket if it doesn't exist.
func (m *minioBlobStore) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket %s: %w", m.bucket, err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("error creating bucket %s: %w", m.bucket, err)
		}
	}
	return nil
}

// Save uploads data under key and returns the key as the locator.
func (m *minioBlobStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	log := logger.FromContext(ctx)

	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		log.Err(err).
			Str("func", "minioBlobStore.Save").
			Str("key", key).
			Msg("failed to put object")
		return "", fmt.Errorf("error putting object %s: %w", key, err)
	}

	return key, nil
}

// Delete removes the object behind locator. Object storage treats removal of
// an absent key as success, which matches the best-effort delete contract.
func (m *minioBlobStore) Delete(ctx context.Context, locator string) error {
	log := logger.FromContext(ctx)

	if err := m.client.RemoveObject(ctx, m.bucket, locator, minio.RemoveObjectOptions{}); err != nil {
		log.Err(err).
			Str("func", "minioBlobStore.Delete").
			Str("key", locator).
			Msg("failed to remove object")
		return fmt.Errorf("error removing object %s: %w", locator, err)
	}

	return nil
}
