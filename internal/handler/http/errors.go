package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two space-separated
	// parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// Sentinel errors used by the API-key middleware on the AI callback route.
var (
	// ErrMissingAPIKey is returned when the X-API-Key header is absent.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidAPIKey is returned when the X-API-Key header does not match
	// the configured shared secret.
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// Pagination validation errors for the detection list endpoint.
var (
	errInvalidSkip  = errors.New("skip must be a non-negative integer")
	errInvalidLimit = errors.New("limit must be an integer between 1 and 100")
)
