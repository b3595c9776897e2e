package http

import (
	"net/http"

	"github.com/aidetect/image-detector/internal/utils"
)

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{
		"service": "image-detector",
		"version": h.version,
		"docs":    "/api/v1",
	}, http.StatusOK)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
