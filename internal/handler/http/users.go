package http

import (
	"net/http"

	"github.com/aidetect/image-detector/internal/logger"
	"github.com/aidetect/image-detector/internal/utils"
)

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	currentUser, err := h.services.AuthService.GetUser(ctx, userID)
	if err != nil {
		log.Err(err).Msg("getting current user failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, currentUser, http.StatusOK)
}
