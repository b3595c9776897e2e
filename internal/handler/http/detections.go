package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aidetect/image-detector/internal/logger"
	"github.com/aidetect/image-detector/internal/service"
	"github.com/aidetect/image-detector/internal/utils"
	"github.com/aidetect/image-detector/models"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100

	// multipartOverhead covers the boundary, part headers and any small
	// extra form fields around the file part when bounding the request body.
	multipartOverhead = 10 << 10
)

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	// Bound the whole body before multipart parsing so an oversized upload
	// is cut off at the connection instead of streaming to temp files.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			log.Err(err).Msg("multipart body exceeds upload cap")
			writeError(w, service.ErrFileTooLarge)
			return
		}
		log.Err(err).Msg("no file in multipart form")
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Read one byte past the cap so the service can reject oversized uploads
	// without the handler ever buffering an unbounded body.
	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
	if err != nil {
		log.Err(err).Msg("reading uploaded file failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	createdDetection, err := h.services.DetectionService.Ingest(ctx, userID, header.Filename, data)
	if err != nil {
		log.Err(err).Str("filename", header.Filename).Msg("ingesting upload failed")
		writeError(w, err)
		return
	}

	log.Debug().Int64("detection_id", createdDetection.ID).Msg("detection created")
	utils.WriteJSON(w, createdDetection, http.StatusCreated)
}

func (h *Handler) listDetections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	skip, limit, err := paginationParams(r)
	if err != nil {
		log.Err(err).Msg("invalid pagination parameters")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, total, err := h.services.DetectionService.ListDetections(ctx, userID, skip, limit)
	if err != nil {
		log.Err(err).Msg("listing detections failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.DetectionList{Total: total, Items: items}, http.StatusOK)
}

func (h *Handler) getDetection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, detectionID, ok := h.detectionRequestIDs(w, r)
	if !ok {
		return
	}

	foundDetection, err := h.services.DetectionService.GetDetection(ctx, userID, detectionID)
	if err != nil {
		log.Err(err).Int64("detection_id", detectionID).Msg("getting detection failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, foundDetection, http.StatusOK)
}

func (h *Handler) detectionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, detectionID, ok := h.detectionRequestIDs(w, r)
	if !ok {
		return
	}

	status, err := h.services.DetectionService.Status(ctx, userID, detectionID)
	if err != nil {
		log.Err(err).Int64("detection_id", detectionID).Msg("getting detection status failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) updateDetection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, detectionID, ok := h.detectionRequestIDs(w, r)
	if !ok {
		return
	}

	var update models.DetectionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updatedDetection, err := h.services.DetectionService.UpdateResult(ctx, userID, detectionID, update)
	if err != nil {
		log.Err(err).Int64("detection_id", detectionID).Msg("updating detection failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, updatedDetection, http.StatusOK)
}

func (h *Handler) deleteDetection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, detectionID, ok := h.detectionRequestIDs(w, r)
	if !ok {
		return
	}

	if err := h.services.DetectionService.Delete(ctx, userID, detectionID); err != nil {
		log.Err(err).Int64("detection_id", detectionID).Msg("deleting detection failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// detectionRequestIDs extracts the authenticated user id and the detection id
// path parameter, writing the error response itself when either is missing.
func (h *Handler) detectionRequestIDs(w http.ResponseWriter, r *http.Request) (userID, detectionID int64, ok bool) {
	log := logger.FromRequest(r)

	userID, okUser := utils.GetUserIDFromContext(r.Context())
	if !okUser {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return 0, 0, false
	}

	detectionID, err := strconv.ParseInt(chi.URLParam(r, "detectionID"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid detection id")
		http.Error(w, "invalid detection id", http.StatusBadRequest)
		return 0, 0, false
	}

	return userID, detectionID, true
}

func paginationParams(r *http.Request) (skip, limit int, err error) {
	skip, limit = 0, defaultListLimit

	if raw := r.URL.Query().Get("skip"); raw != "" {
		skip, err = strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return 0, 0, errInvalidSkip
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			return 0, 0, errInvalidLimit
		}
	}

	return skip, limit, nil
}
