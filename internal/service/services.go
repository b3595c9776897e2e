// Package service implements the application's business rules on top of the
// persistence layer: authentication and the detection lifecycle state machine.
package service

import (
	"github.com/aidetect/image-detector/internal/config"
	"github.com/aidetect/image-detector/internal/logger"
	"github.com/aidetect/image-detector/internal/store"
)

type Services struct {
	AuthService      AuthService
	DetectionService DetectionService
}

func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, cfg, logger),
		DetectionService: NewDetectionService(storages.DetectionRepository, storages.BlobStore, cfg, logger),
	}
}
