package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidetect/image-detector/internal/logger"
	"github.com/aidetect/image-detector/internal/store"
	"github.com/aidetect/image-detector/models"
)

// ─────────────────────────────────────────────
// Mock: store.DetectionRepository
// ─────────────────────────────────────────────

type mockDetectionRepository struct {
	createFn func(ctx context.Context, detection models.Detection) (models.Detection, error)
	getFn    func(ctx context.Context, id int64) (models.Detection, error)
	listFn   func(ctx context.Context, userID int64, offset, limit int) ([]models.Detection, int64, error)
	updateFn func(ctx context.Context, id int64, update models.DetectionUpdate) (models.Detection, error)
	deleteFn func(ctx context.Context, id int64) (bool, error)
}

func (m *mockDetectionRepository) CreateDetection(ctx context.Context, detection models.Detection) (models.Detection, error) {
	if m.createFn != nil {
		return m.createFn(ctx, detection)
	}
	detection.ID = 1
	return detection, nil
}

func (m *mockDetectionRepository) GetDetectionByID(ctx context.Context, id int64) (models.Detection, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Detection{}, store.ErrDetectionNotFound
}

func (m *mockDetectionRepository) ListDetectionsByUser(ctx context.Context, userID int64, offset, limit int) ([]models.Detection, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, offset, limit)
	}
	return nil, 0, nil
}

func (m *mockDetectionRepository) UpdateDetectionResult(ctx context.Context, id int64, update models.DetectionUpdate) (models.Detection, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return models.Detection{}, store.ErrDetectionNotFound
}

func (m *mockDetectionRepository) DeleteDetection(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

// ─────────────────────────────────────────────
// Mock: store.BlobStore
// ─────────────────────────────────────────────

type mockBlobStore struct {
	saveFn   func(ctx context.Context, key string, data []byte) (string, error)
	deleteFn func(ctx context.Context, locator string) error
}

func (m *mockBlobStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, key, data)
	}
	return "uploads/" + key, nil
}

func (m *mockBlobStore) Delete(ctx context.Context, locator string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, locator)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestDetectionService(repo *mockDetectionRepository, blobs *mockBlobStore) *detectionService {
	return &detectionService{
		repository:    repo,
		blobs:         blobs,
		maxUploadSize: 1024,
		allowedExtensions: map[string]struct{}{
			".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {},
		},
		storageTimeout: time.Second,
		logger:         logger.Nop(),
	}
}

// processingDetection is a fixture owned by user 1, still awaiting its result.
func processingDetection(id int64) models.Detection {
	return models.Detection{
		ID:        id,
		UserID:    1,
		ImagePath: "uploads/1_photo.png",
		ImageName: "photo.png",
		ImageSize: 512,
		CreatedAt: time.Now().Add(-time.Minute),
	}
}

// completedDetection is processingDetection with a verdict written.
func completedDetection(id int64) models.Detection {
	d := processingDetection(id)
	verdict := true
	score := 0.93
	model := "detector-v2"
	now := time.Now()
	d.IsAIGenerated = &verdict
	d.ConfidenceScore = &score
	d.ModelUsed = &model
	d.ProcessedAt = &now
	return d
}

// ─────────────────────────────────────────────
// Ingest
// ─────────────────────────────────────────────

func TestDetectionService_Ingest_Success(t *testing.T) {
	var savedKey string
	blobs := &mockBlobStore{
		saveFn: func(_ context.Context, key string, data []byte) (string, error) {
			savedKey = key
			assert.Len(t, data, 512)
			return "uploads/" + key, nil
		},
	}
	repo := &mockDetectionRepository{
		createFn: func(_ context.Context, d models.Detection) (models.Detection, error) {
			assert.Equal(t, int64(1), d.UserID)
			assert.Equal(t, "photo.png", d.ImageName)
			assert.Equal(t, int64(512), d.ImageSize)
			assert.Equal(t, "uploads/"+savedKey, d.ImagePath)
			d.ID = 10
			return d, nil
		},
	}
	svc := newTestDetectionService(repo, blobs)

	created, err := svc.Ingest(context.Background(), 1, "photo.png", make([]byte, 512))

	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.False(t, created.Processed())

	// key format: <userID>_<unix>_<basename>
	assert.True(t, strings.HasPrefix(savedKey, "1_"))
	assert.True(t, strings.HasSuffix(savedKey, "_photo.png"))
}

func TestDetectionService_Ingest_UnsupportedExtension(t *testing.T) {
	svc := newTestDetectionService(&mockDetectionRepository{}, &mockBlobStore{})

	for _, filename := range []string{"doc.pdf", "script.sh", "noextension", "photo.PNG.exe"} {
		_, err := svc.Ingest(context.Background(), 1, filename, []byte("x"))
		require.ErrorIs(t, err, ErrUnsupportedFileType, "filename %q", filename)
	}
}

func TestDetectionService_Ingest_ExtensionCaseInsensitive(t *testing.T) {
	svc := newTestDetectionService(&mockDetectionRepository{}, &mockBlobStore{})

	created, err := svc.Ingest(context.Background(), 1, "photo.PNG", []byte("x"))

	require.NoError(t, err)
	assert.Equal(t, "photo.PNG", created.ImageName)
}

func TestDetectionService_Ingest_FileTooLarge(t *testing.T) {
	svc := newTestDetectionService(&mockDetectionRepository{}, &mockBlobStore{})

	// exactly at the cap passes
	_, err := svc.Ingest(context.Background(), 1, "a.png", make([]byte, 1024))
	require.NoError(t, err)

	// one byte over is rejected
	_, err = svc.Ingest(context.Background(), 1, "a.png", make([]byte, 1025))
	require.ErrorIs(t, err, ErrFileTooLarge)
}

func TestDetectionService_Ingest_EmptyFilename(t *testing.T) {
	svc := newTestDetectionService(&mockDetectionRepository{}, &mockBlobStore{})

	_, err := svc.Ingest(context.Background(), 1, "", []byte("x"))

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestDetectionService_Ingest_ValidationBeforeStorage(t *testing.T) {
	blobs := &mockBlobStore{
		saveFn: func(_ context.Context, _ string, _ []byte) (string, error) {
			t.Fatal("blob store must not be touched for invalid uploads")
			return "", nil
		},
	}
	svc := newTestDetectionService(&mockDetectionRepository{}, blobs)

	_, err := svc.Ingest(context.Background(), 1, "malware.exe", make([]byte, 4096))

	require.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestDetectionService_Ingest_CompensatingBlobDelete(t *testing.T) {
	deleted := false
	blobs := &mockBlobStore{
		deleteFn: func(_ context.Context, locator string) error {
			deleted = true
			assert.True(t, strings.HasPrefix(locator, "uploads/1_"))
			return nil
		},
	}
	repo := &mockDetectionRepository{
		createFn: func(_ context.Context, _ models.Detection) (models.Detection, error) {
			return models.Detection{}, errDB
		},
	}
	svc := newTestDetectionService(repo, blobs)

	_, err := svc.Ingest(context.Background(), 1, "photo.png", []byte("x"))

	require.ErrorIs(t, err, errDB)
	assert.True(t, deleted, "stored blob must be removed when record creation fails")
}

func TestDetectionService_Ingest_StorageTimeout(t *testing.T) {
	blobs := &mockBlobStore{
		saveFn: func(_ context.Context, _ string, _ []byte) (string, error) {
			return "", context.DeadlineExceeded
		},
	}
	svc := newTestDetectionService(&mockDetectionRepository{}, blobs)

	_, err := svc.Ingest(context.Background(), 1, "photo.png", []byte("x"))

	require.ErrorIs(t, err, ErrStorageUnavailable)
}

// ─────────────────────────────────────────────
// GetDetection
// ─────────────────────────────────────────────

func TestDetectionService_GetDetection_Owner(t *testing.T) {
	repo := &mockDetectionRepository{
		getFn: func(_ context.Context, id int64) (models.Detection, error) {
			return processingDetection(id), nil
		},
	}
	svc := newTestDetectionService(repo, &mockBlobStore{})

	found, err := svc.GetDetection(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(10), found.ID)
}

func TestDetectionService_GetDetection_ForeignRecord(t *testing.T) {
	repo := &mockDetectionRepository{
		getFn: func(_ context.Context, id int64) (models.Detection, error) {
			return processingDetection(id), nil
		},
	}
	svc := newTestDetectionService(repo, &mockBlobStore{})

	_, err := svc.GetDetection(context.Background(), 2, 10)

	// existence is disclosed, access is not
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestDetectionService_GetDetection_NotFound(t *testing.T) {
	svc := newTestDetectionService(&mockDetectionRepository{}, &mockBlobStore{})

	_, err := svc.GetDetection(context.Background(), 1, 99)

	require.ErrorIs(t, err, store.ErrDetectionNotFound)
}

// ─────────────────────────────────────────────
// ListDetections
// ─────────────────────────────────────────────

func TestDetectionService_ListDetections_PassesPaging(t *testing.T) {
	repo := &mockDetectionRepository{
		listFn: func(_ context.Context, userID int64, offset, limit int) ([]models.Detection, int64, error) {
			assert.Equal(t, int64(1), userID)
			assert.Equal(t, 20, offset)
			assert.Equal(t, 10, limit)
			return []models.Detection{processingDetection(5)}, 21, nil
		},
	}
	svc := newTestDetectionService(repo, &mockBlobStore{})

	items, total, err := svc.ListDetections(context.Background(), 1, 20, 10)

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(21), total)
}

func TestDetectionService_ListDetections_StorageTimeout(t *testing.T) {
	repo := &mockDetectionRepository{
		listFn: func(_ context.Context, _ int64, _, _ int) ([]models.Detection, int64, error) {
			return nil, 0, context.DeadlineExceeded
		},
	}
	svc := newTestDetectionService(repo, &mockBlobStore{})

	_, _, err := svc.ListDetections(context.Background(), 1, 0, 10)

	require.ErrorIs(t, err, ErrStorageUnavailable)
}

// ─────────────────────────────────────────────
// Status
// ─────────────────────────────────────────────

func TestDetectionService_Status_Processing(t *testing.T) {
	repo := &mockDetectionRepository{
		getFn: func(_ context.Context, id int64) (models.Detection, error) {
			return processingDetection(id), nil
		},
	}
	svc := newTestDetectionService(repo, &mockBlobStore{})

	status, err := svc.Status(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, status.Status)
	assert.Equal(t, int64(10), status.DetectionID)
	assert.NotEmpty(t, status.Message)
	assert.Nil(t, status.Detection)
}

func TestDetectionService_Status_Completed(t *testing.T) {
	repo := &mockDetectionRepository{
		getFn: func(_ context.Context, id int64) (models.Detection, error) {
			return completedDetection(id), nil
		},
	}
	svc := newTestDetectionService(repo, &mockBlobStore{})

	status, err := svc.Status(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, status.Status)
	require.NotNil(t, status.Detection)
	assert.Equal(t, int64(10), status.Detection.ID)
}

func TestDetectionService_Status_ForeignRecord(t *testing.T) {
	repo := &mockDetectionRepository{
		getFn: func(_ context.Context, id int64) (models.Detection, error) {
			return completedDetection(id), nil
		},
	}
	svc := newTestDetectionService(repo, &mockBlobStore{})

	_, err := svc.Status(context.Background(), 2, 10)

	require.ErrorIs(t, err, ErrAccessDenied)
}

// ─────────────────────────────────────────────
// UpdateResult / ApplyResult
// ─────────────────────────────────────────────

func TestDetectionService_ApplyResult_NoOwnershipCheck(t *testing.T) {
	verdict := true
	repo := &mockDetectionRepository{
		updateFn: func(_ context.Context, id int64, update models.DetectionUpdate) (models.Detection, error) {
			require.NotNil(t, update.IsAIGenerated)
			d := completedDetection(id)
			d.IsAIGenerated = update.IsAIGenerated
			return d, nil
		},
	}
	svc := newTestDetectionService(repo, &mockBlobStore{})

	updated, err := svc.ApplyResult(context.Background(), 10, models.DetectionUpdate{IsAIGenerated: &verdict})

	require.NoError(t, err)
	assert.True(t, updated.Processed())
}

func TestDetectionService_ApplyResult_NotFound(t *testing.T) {
	verdict := false
	svc := newTestDetectionService(&mockDetectionRepository{}, &mockBlobStore{})

	_, err := svc.ApplyResult(context.Background(), 99, models.DetectionUpdate{IsAIGenerated: &verdict})

	require.ErrorIs(t, err, store.ErrDetectionNotFound)
}

func TestDetectionService_UpdateResult_OwnerChecked(t *testing.T) {
	verdict := true
	repo := &mockDetectionRepository{
		getFn: func(_ context.Context, id int64) (models.Detection, error) {
			return processingDetection(id), nil
		},
		updateFn: func(_ context.Context, id int64, _ models.DetectionUpdate) (models.Detection, error) {
			return completedDetection(id), nil
		},
	}
	svc := newTestDetectionService(repo, &mockBlobStore{})

	// owner succeeds
	updated, err := svc.UpdateResult(context.Background(), 1, 10, models.DetectionUpdate{IsAIGenerated: &verdict})
	require.NoError(t, err)
	assert.True(t, updated.Processed())

	// non-owner is rejected before any write
	_, err = svc.UpdateResult(context.Background(), 2, 10, models.DetectionUpdate{IsAIGenerated: &verdict})
	require.ErrorIs(t, err, ErrAccessDenied)
}

// ─────────────────────────────────────────────
// Delete
// ─────────────────────────────────────────────

func TestDetectionService_Delete_Success(t *testing.T) {
	blobDeleted := false
	blobs := &mockBlobStore{
		deleteFn: func(_ context.Context, locator string) error {
			blobDeleted = true
			assert.Equal(t, "uploads/1_photo.png", locator)
			return nil
		},
	}
	repo := &mockDetectionRepository{
		getFn: func(_ context.Context, id int64) (models.Detection, error) {
			return processingDetection(id), nil
		},
		deleteFn: func(_ context.Context, _ int64) (bool, error) {
			return true, nil
		},
	}
	svc := newTestDetectionService(repo, blobs)

	err := svc.Delete(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.True(t, blobDeleted)
}

func TestDetectionService_Delete_MissingBlobIgnored(t *testing.T) {
	blobs := &mockBlobStore{
		deleteFn: func(_ context.Context, _ string) error {
			return store.ErrBlobNotFound
		},
	}
	repo := &mockDetectionRepository{
		getFn: func(_ context.Context, id int64) (models.Detection, error) {
			return processingDetection(id), nil
		},
		deleteFn: func(_ context.Context, _ int64) (bool, error) {
			return true, nil
		},
	}
	svc := newTestDetectionService(repo, blobs)

	require.NoError(t, svc.Delete(context.Background(), 1, 10))
}

func TestDetectionService_Delete_ForeignRecord(t *testing.T) {
	repo := &mockDetectionRepository{
		getFn: func(_ context.Context, id int64) (models.Detection, error) {
			return processingDetection(id), nil
		},
		deleteFn: func(_ context.Context, _ int64) (bool, error) {
			t.Fatal("record delete must not run for a non-owner")
			return false, nil
		},
	}
	svc := newTestDetectionService(repo, &mockBlobStore{})

	err := svc.Delete(context.Background(), 2, 10)

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestDetectionService_Delete_RacedWithConcurrentDelete(t *testing.T) {
	repo := &mockDetectionRepository{
		getFn: func(_ context.Context, id int64) (models.Detection, error) {
			return processingDetection(id), nil
		},
		deleteFn: func(_ context.Context, _ int64) (bool, error) {
			// the row vanished between the ownership check and the delete
			return false, nil
		},
	}
	svc := newTestDetectionService(repo, &mockBlobStore{})

	err := svc.Delete(context.Background(), 1, 10)

	require.ErrorIs(t, err, store.ErrDetectionNotFound)
}
