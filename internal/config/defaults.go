package config

import "time"

// Fallback values applied as the lowest-priority configuration source.
// Any field already populated from environment variables or flags wins.
const (
	defaultHTTPAddress    = ":8080"
	defaultTokenIssuer    = "image-detector"
	defaultTokenDuration  = 30 * time.Minute
	defaultMaxUploadSize  = 10 << 20 // 10 MiB
	defaultUploadDir      = "uploads"
	defaultStorageTimeout = 10 * time.Second
	defaultRequestTimeout = time.Minute
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:       defaultTokenIssuer,
			TokenDuration:     defaultTokenDuration,
			MaxUploadSize:     defaultMaxUploadSize,
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".webp"},
			StorageTimeout:    defaultStorageTimeout,
		},
		Storage: Storage{
			Files: Files{
				UploadDir: defaultUploadDir,
			},
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
	}
}
