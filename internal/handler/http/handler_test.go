package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aidetect/image-detector/internal/config"
	"github.com/aidetect/image-detector/internal/logger"
	"github.com/aidetect/image-detector/internal/service"
	"github.com/aidetect/image-detector/models"
)

// ─────────────────────────────────────────────
// Mock service.AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, signup models.SignupRequest) (models.User, error)
	loginFn        func(ctx context.Context, username, password string) (models.User, error)
	getUserFn      func(ctx context.Context, userID int64) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, signup models.SignupRequest) (models.User, error) {
	return m.registerUserFn(ctx, signup)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (models.User, error) {
	return m.loginFn(ctx, username, password)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// ─────────────────────────────────────────────
// Mock service.DetectionService
// ─────────────────────────────────────────────

type mockDetectionService struct {
	ingestFn       func(ctx context.Context, userID int64, filename string, data []byte) (models.Detection, error)
	getFn          func(ctx context.Context, userID, detectionID int64) (models.Detection, error)
	listFn         func(ctx context.Context, userID int64, offset, limit int) ([]models.Detection, int64, error)
	statusFn       func(ctx context.Context, userID, detectionID int64) (models.DetectionStatus, error)
	updateResultFn func(ctx context.Context, userID, detectionID int64, update models.DetectionUpdate) (models.Detection, error)
	applyResultFn  func(ctx context.Context, detectionID int64, update models.DetectionUpdate) (models.Detection, error)
	deleteFn       func(ctx context.Context, userID, detectionID int64) error
}

func (m *mockDetectionService) Ingest(ctx context.Context, userID int64, filename string, data []byte) (models.Detection, error) {
	return m.ingestFn(ctx, userID, filename, data)
}

func (m *mockDetectionService) GetDetection(ctx context.Context, userID, detectionID int64) (models.Detection, error) {
	return m.getFn(ctx, userID, detectionID)
}

func (m *mockDetectionService) ListDetections(ctx context.Context, userID int64, offset, limit int) ([]models.Detection, int64, error) {
	return m.listFn(ctx, userID, offset, limit)
}

func (m *mockDetectionService) Status(ctx context.Context, userID, detectionID int64) (models.DetectionStatus, error) {
	return m.statusFn(ctx, userID, detectionID)
}

func (m *mockDetectionService) UpdateResult(ctx context.Context, userID, detectionID int64, update models.DetectionUpdate) (models.Detection, error) {
	return m.updateResultFn(ctx, userID, detectionID, update)
}

func (m *mockDetectionService) ApplyResult(ctx context.Context, detectionID int64, update models.DetectionUpdate) (models.Detection, error) {
	return m.applyResultFn(ctx, detectionID, update)
}

func (m *mockDetectionService) Delete(ctx context.Context, userID, detectionID int64) error {
	return m.deleteFn(ctx, userID, detectionID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var errStorage = errors.New("storage failure")

var testAppConfig = config.App{
	MaxUploadSize:   1 << 20,
	AIServiceAPIKey: "callback-secret",
	Version:         "test",
}

// newTestHandler builds a Handler around the given service mocks.
func newTestHandler(auth service.AuthService, detections service.DetectionService) *Handler {
	return NewHandler(&service.Services{
		AuthService:      auth,
		DetectionService: detections,
	}, testAppConfig, logger.Nop())
}

func TestRoot(t *testing.T) {
	h := newTestHandler(&mockAuthService{}, &mockDetectionService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.root(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(&mockAuthService{}, &mockDetectionService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
