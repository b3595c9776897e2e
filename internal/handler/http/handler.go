package http

import (
	"github.com/aidetect/image-detector/internal/config"
	"github.com/aidetect/image-detector/internal/logger"
	"github.com/aidetect/image-detector/internal/service"
)

type Handler struct {
	services *service.Services

	// aiServiceKey is the shared secret required on the AI callback route.
	// Empty means the check is disabled (development only).
	aiServiceKey string

	// maxUploadSize mirrors the service-layer cap; the multipart reader is
	// bounded to it so an oversized body never buffers fully in memory.
	maxUploadSize int64

	version string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	if cfg.AIServiceAPIKey == "" {
		logger.Warn().Msg("AI service API key is not set, result callback endpoint is unauthenticated")
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		aiServiceKey:  cfg.AIServiceAPIKey,
		maxUploadSize: cfg.MaxUploadSize,
		version:       cfg.Version,
		logger:        logger,
	}
}
