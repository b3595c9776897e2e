package config

import "errors"

// Validation errors returned by [StructuredConfig.validate]. Several of them
// may be joined into a single error when more than one field is missing.
var (
	// ErrNoTokenSignKey is returned when no JWT signing key is configured.
	// The server cannot issue or verify bearer tokens without it.
	ErrNoTokenSignKey = errors.New("token sign key is not set")

	// ErrNoDatabaseDSN is returned when no database connection string is
	// configured.
	ErrNoDatabaseDSN = errors.New("database DSN is not set")

	// ErrInvalidMaxUploadSize is returned when the upload size cap is zero
	// or negative.
	ErrInvalidMaxUploadSize = errors.New("max upload size must be positive")

	// ErrNoAllowedExtensions is returned when the allowed-extension set is
	// empty, which would reject every upload.
	ErrNoAllowedExtensions = errors.New("allowed extensions list is empty")
)
