package http

import (
	"errors"
	"net/http"

	"github.com/aidetect/image-detector/internal/service"
	"github.com/aidetect/image-detector/internal/store"
)

// errorStatusMappings translates service- and store-level sentinel errors
// into HTTP status codes. Order matters: service sentinels come before the
// low-level store sentinels they may wrap, so a storage timeout — which
// carries both ErrStorageUnavailable and ErrExecutingQuery in one chain —
// always maps to 503.
//
// The duplicate-signup sentinels map to 400 rather than 409, and the upload
// validation sentinels map to 400 rather than 415/413.
var errorStatusMappings = []struct {
	sentinel error
	status   int
}{
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrWrongPassword, http.StatusUnauthorized},
	{service.ErrInactiveUser, http.StatusBadRequest},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrAccessDenied, http.StatusForbidden},
	{service.ErrUnsupportedFileType, http.StatusBadRequest},
	{service.ErrFileTooLarge, http.StatusBadRequest},
	{service.ErrStorageUnavailable, http.StatusServiceUnavailable},

	{store.ErrUsernameAlreadyExists, http.StatusBadRequest},
	{store.ErrEmailAlreadyExists, http.StatusBadRequest},
	{store.ErrNoUserWasFound, http.StatusNotFound},
	{store.ErrDetectionNotFound, http.StatusNotFound},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, m := range errorStatusMappings {
		if errors.Is(err, m.sentinel) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// writeError responds with the status mapped from err. Internal errors are
// masked with the generic status text so storage details never leak to
// clients; handlers log the original error before calling this.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}
