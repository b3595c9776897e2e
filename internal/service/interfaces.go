package service

import (
	"context"

	"github.com/aidetect/image-detector/models"
)

// AuthService owns account registration, credential verification, and the
// JWT token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, signup models.SignupRequest) (models.User, error)
	Login(ctx context.Context, username, password string) (models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// DetectionService orchestrates the detection lifecycle: ingest, ownership
// enforcement, status polling, the AI result callback, and deletion.
type DetectionService interface {
	// Ingest validates the upload, stores the image bytes, and creates the
	// detection record in the processing state.
	Ingest(ctx context.Context, userID int64, filename string, data []byte) (models.Detection, error)

	// GetDetection returns the record after the ownership check.
	GetDetection(ctx context.Context, userID, detectionID int64) (models.Detection, error)

	// ListDetections returns one page of the user's history plus the total count.
	ListDetections(ctx context.Context, userID int64, offset, limit int) ([]models.Detection, int64, error)

	// Status reports the polling payload: processing, or completed with the
	// full record.
	Status(ctx context.Context, userID, detectionID int64) (models.DetectionStatus, error)

	// UpdateResult is the owner-checked twin of ApplyResult, backing the
	// PATCH endpoint.
	UpdateResult(ctx context.Context, userID, detectionID int64, update models.DetectionUpdate) (models.Detection, error)

	// ApplyResult writes a partial result on behalf of the external AI
	// engine. No ownership check — the caller is trusted at the transport
	// boundary (shared API key), not by record ownership.
	ApplyResult(ctx context.Context, detectionID int64, update models.DetectionUpdate) (models.Detection, error)

	// Delete removes the record and, best-effort, its stored image.
	Delete(ctx context.Context, userID, detectionID int64) error
}
