package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrInactiveUser        = errors.New("inactive user")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrAccessDenied is returned when an authenticated user touches a
	// detection owned by someone else. It is distinct from not-found on
	// purpose: existence of a record is disclosed to non-owners.
	ErrAccessDenied = errors.New("not authorized to access this detection")

	// ErrUnsupportedFileType rejects uploads whose filename extension is
	// outside the configured allow-list.
	ErrUnsupportedFileType = errors.New("file type not allowed")

	// ErrFileTooLarge rejects uploads exceeding the configured size cap.
	ErrFileTooLarge = errors.New("file too large")

	// ErrStorageUnavailable is surfaced when a storage call exceeds its
	// bounded timeout. Clients may retry.
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)
