package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aidetect/image-detector/internal/logger"
	"github.com/aidetect/image-detector/internal/utils"
	"github.com/aidetect/image-detector/models"
)

// processResult receives the classification result from the external AI
// service. The route is guarded by the shared API key, not by record
// ownership, so the result is applied to whichever detection the path names.
func (h *Handler) processResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	detectionID, err := strconv.ParseInt(chi.URLParam(r, "detectionID"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid detection id")
		http.Error(w, "invalid detection id", http.StatusBadRequest)
		return
	}

	var update models.DetectionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updatedDetection, err := h.services.DetectionService.ApplyResult(ctx, detectionID, update)
	if err != nil {
		log.Err(err).Int64("detection_id", detectionID).Msg("applying AI result failed")
		writeError(w, err)
		return
	}

	log.Debug().Int64("detection_id", detectionID).Msg("AI result applied")
	utils.WriteJSON(w, updatedDetection, http.StatusOK)
}
