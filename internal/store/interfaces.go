package store

import (
	"context"

	"github.com/aidetect/image-detector/models"
)

// UserRepository persists and looks up user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
}

// DetectionRepository persists detection records and serves ownership-scoped
// queries. It carries no business rules beyond atomic single-record
// read-modify-write; ownership checks and lifecycle decisions live in the
// service layer.
type DetectionRepository interface {
	// CreateDetection inserts a new record in the processing state and
	// returns the persisted row with server-assigned ID and CreatedAt.
	CreateDetection(ctx context.Context, detection models.Detection) (models.Detection, error)

	// GetDetectionByID returns the record or ErrDetectionNotFound.
	GetDetectionByID(ctx context.Context, id int64) (models.Detection, error)

	// ListDetectionsByUser returns one page of the user's detections ordered
	// most-recent-first, plus the user's total record count.
	ListDetectionsByUser(ctx context.Context, userID int64, offset, limit int) ([]models.Detection, int64, error)

	// UpdateDetectionResult applies a partial result update. Whenever the
	// update carries at least one result field, processed_at is refreshed to
	// the current time — also on reprocessing of an already-completed record.
	// Returns the updated row or ErrDetectionNotFound.
	UpdateDetectionResult(ctx context.Context, id int64, update models.DetectionUpdate) (models.Detection, error)

	// DeleteDetection removes the record; the boolean reports whether a row
	// existed.
	DeleteDetection(ctx context.Context, id int64) (bool, error)
}

// BlobStore persists uploaded image bytes and returns a stable locator for
// later deletion. Implementations: local filesystem and S3-compatible object
// storage.
type BlobStore interface {
	// Save stores data under the given key and returns the locator to keep
	// in the detection record.
	Save(ctx context.Context, key string, data []byte) (string, error)

	// Delete removes the stored object. Returns ErrBlobNotFound when the
	// object is already absent.
	Delete(ctx context.Context, locator string) error
}
