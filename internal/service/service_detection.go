package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aidetect/image-detector/internal/config"
	"github.com/aidetect/image-detector/internal/logger"
	"github.com/aidetect/image-detector/internal/store"
	"github.com/aidetect/image-detector/models"
)

// detectionService is the concrete implementation of DetectionService.
//
// It owns the detection lifecycle state machine: a record is created in the
// processing state at ingest, moves to completed when the first result is
// written, stays writable for reprocessing, and is removable by its owner at
// any point. Every durable-state interaction goes through the injected
// repository and blob store under a bounded timeout; the service itself keeps
// no mutable state between requests.
type detectionService struct {
	repository store.DetectionRepository
	blobs      store.BlobStore

	// maxUploadSize caps accepted uploads in bytes; a payload of exactly
	// this size passes, one byte more is rejected.
	maxUploadSize int64

	// allowedExtensions is the lowercase extension allow-list, dot included.
	allowedExtensions map[string]struct{}

	// storageTimeout bounds each repository/blob call. Zero disables the bound.
	storageTimeout time.Duration

	logger *logger.Logger
}

// NewDetectionService constructs a DetectionService wired to the given
// repository and blob store, with upload limits taken from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewDetectionService(repository store.DetectionRepository, blobs store.BlobStore, cfg config.App, logger *logger.Logger) DetectionService {
	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	return &detectionService{
		repository:        repository,
		blobs:             blobs,
		maxUploadSize:     cfg.MaxUploadSize,
		allowedExtensions: allowed,
		storageTimeout:    cfg.StorageTimeout,
		logger:            logger,
	}
}

// storageCtx derives a context bounding a single storage call.
func (s *detectionService) storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storageTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storageTimeout)
}

// classify translates a storage-call failure into the service error model:
// deadline expiry becomes the retryable ErrStorageUnavailable, everything
// else passes through.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return err
}

// Ingest validates and stores an uploaded image and creates its detection
// record in the processing state.
//
// Validation happens strictly before any durable write:
//   - the filename extension must be in the configured allow-list,
//     otherwise ErrUnsupportedFileType;
//   - len(data) must not exceed the configured cap, otherwise ErrFileTooLarge.
//
// The image bytes are stored first, then the record is created pointing at
// the locator. The two writes are not transactional: if record creation
// fails, the stored blob is deleted as a compensating action so no orphaned
// image is left behind. The compensation itself is best-effort and logged on
// failure.
func (s *detectionService) Ingest(ctx context.Context, userID int64, filename string, data []byte) (models.Detection, error) {
	log := logger.FromContext(ctx)

	if filename == "" {
		return models.Detection{}, ErrInvalidDataProvided
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := s.allowedExtensions[ext]; !ok {
		log.Warn().
			Int64("user_id", userID).
			Str("extension", ext).
			Msg("upload rejected: extension not allowed")
		return models.Detection{}, ErrUnsupportedFileType
	}

	if int64(len(data)) > s.maxUploadSize {
		log.Warn().
			Int64("user_id", userID).
			Int("size", len(data)).
			Int64("max", s.maxUploadSize).
			Msg("upload rejected: file too large")
		return models.Detection{}, ErrFileTooLarge
	}

	key := fmt.Sprintf("%d_%d_%s", userID, time.Now().UTC().Unix(), filepath.Base(filename))

	blobCtx, cancelBlob := s.storageCtx(ctx)
	defer cancelBlob()

	locator, err := s.blobs.Save(blobCtx, key, data)
	if err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Str("key", key).
			Msg("failed to store uploaded image")
		return models.Detection{}, classify(err)
	}

	createCtx, cancelCreate := s.storageCtx(ctx)
	defer cancelCreate()

	created, err := s.repository.CreateDetection(createCtx, models.Detection{
		UserID:    userID,
		ImagePath: locator,
		ImageName: filename,
		ImageSize: int64(len(data)),
	})
	if err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Str("locator", locator).
			Msg("failed to create detection record, removing stored image")

		// compensating delete; context.Background so a dead request context
		// cannot leave the blob orphaned
		cleanupCtx, cancelCleanup := s.storageCtx(context.Background())
		defer cancelCleanup()
		if cleanupErr := s.blobs.Delete(cleanupCtx, locator); cleanupErr != nil && !errors.Is(cleanupErr, store.ErrBlobNotFound) {
			log.Err(cleanupErr).
				Str("locator", locator).
				Msg("compensating blob delete failed, image orphaned")
		}

		return models.Detection{}, classify(err)
	}

	log.Info().
		Int64("user_id", userID).
		Int64("detection_id", created.ID).
		Str("image_name", created.ImageName).
		Msg("detection created")

	return created, nil
}

// GetDetection returns a single record after the ownership check.
//
// A missing record yields store.ErrDetectionNotFound; an existing record
// owned by someone else yields ErrAccessDenied. The distinction is part of
// the contract: existence is disclosed to authenticated non-owners.
func (s *detectionService) GetDetection(ctx context.Context, userID, detectionID int64) (models.Detection, error) {
	storageCtx, cancel := s.storageCtx(ctx)
	defer cancel()

	detection, err := s.repository.GetDetectionByID(storageCtx, detectionID)
	if err != nil {
		return models.Detection{}, classify(err)
	}

	if detection.UserID != userID {
		logger.FromContext(ctx).Warn().
			Int64("user_id", userID).
			Int64("owner_id", detection.UserID).
			Int64("detection_id", detectionID).
			Msg("access to foreign detection denied")
		return models.Detection{}, ErrAccessDenied
	}

	return detection, nil
}

// ListDetections returns one page of the user's detection history, newest
// first, plus the total count of the user's records.
func (s *detectionService) ListDetections(ctx context.Context, userID int64, offset, limit int) ([]models.Detection, int64, error) {
	storageCtx, cancel := s.storageCtx(ctx)
	defer cancel()

	items, total, err := s.repository.ListDetectionsByUser(storageCtx, userID, offset, limit)
	if err != nil {
		return nil, 0, classify(err)
	}

	return items, total, nil
}

// Status reports the polling payload for a detection after the same
// ownership check as GetDetection.
//
// The record is processing until the classification verdict is written; from
// then on every poll reports completed and embeds the full record.
func (s *detectionService) Status(ctx context.Context, userID, detectionID int64) (models.DetectionStatus, error) {
	detection, err := s.GetDetection(ctx, userID, detectionID)
	if err != nil {
		return models.DetectionStatus{}, err
	}

	if !detection.Processed() {
		return models.DetectionStatus{
			Status:      models.StatusProcessing,
			DetectionID: detectionID,
			Message:     "AI is still processing your image",
		}, nil
	}

	return models.DetectionStatus{
		Status:    models.StatusCompleted,
		Detection: &detection,
	}, nil
}

// UpdateResult applies a partial result update on behalf of the record's
// owner. Same write semantics as ApplyResult, preceded by the ownership check.
func (s *detectionService) UpdateResult(ctx context.Context, userID, detectionID int64, update models.DetectionUpdate) (models.Detection, error) {
	if _, err := s.GetDetection(ctx, userID, detectionID); err != nil {
		return models.Detection{}, err
	}

	return s.ApplyResult(ctx, detectionID, update)
}

// ApplyResult writes a partial result on behalf of the external AI engine.
//
// There is deliberately no ownership check here: this is the integration seam
// with the classification service, trusted at the transport boundary instead.
// The write is idempotently re-appliable — a second callback overwrites the
// supplied fields and refreshes processed_at.
func (s *detectionService) ApplyResult(ctx context.Context, detectionID int64, update models.DetectionUpdate) (models.Detection, error) {
	log := logger.FromContext(ctx)

	storageCtx, cancel := s.storageCtx(ctx)
	defer cancel()

	updated, err := s.repository.UpdateDetectionResult(storageCtx, detectionID, update)
	if err != nil {
		return models.Detection{}, classify(err)
	}

	log.Info().
		Int64("detection_id", detectionID).
		Str("status", updated.Status()).
		Msg("detection result applied")

	return updated, nil
}

// Delete removes a detection and its stored image after the ownership check.
//
// The blob delete is best-effort: an already-absent image does not abort the
// operation. The record delete is authoritative; racing against a concurrent
// callback is resolved by the repository's atomic statements.
func (s *detectionService) Delete(ctx context.Context, userID, detectionID int64) error {
	log := logger.FromContext(ctx)

	detection, err := s.GetDetection(ctx, userID, detectionID)
	if err != nil {
		return err
	}

	blobCtx, cancelBlob := s.storageCtx(ctx)
	defer cancelBlob()

	if err := s.blobs.Delete(blobCtx, detection.ImagePath); err != nil && !errors.Is(err, store.ErrBlobNotFound) {
		log.Err(err).
			Int64("detection_id", detectionID).
			Str("locator", detection.ImagePath).
			Msg("blob delete failed, proceeding with record deletion")
	}

	deleteCtx, cancelDelete := s.storageCtx(ctx)
	defer cancelDelete()

	existed, err := s.repository.DeleteDetection(deleteCtx, detectionID)
	if err != nil {
		return classify(err)
	}
	if !existed {
		// deleted concurrently between the ownership check and now
		return store.ErrDetectionNotFound
	}

	log.Info().
		Int64("user_id", userID).
		Int64("detection_id", detectionID).
		Msg("detection deleted")

	return nil
}
