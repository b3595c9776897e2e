package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/", h.root)
	router.Get("/health", h.health)

	router.Route("/api/v1", func(r chi.Router) {
		// routes without authorization
		r.Post("/auth/signup", h.signup)
		r.Post("/auth/login", h.login)
		r.Post("/auth/token", h.token)

		// bearer-token routes
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/users/me", h.me)

			r.Post("/detections/upload", h.upload)
			r.Get("/detections/", h.listDetections)
			r.Get("/detections/status/{detectionID}", h.detectionStatus)
			r.Get("/detections/{detectionID}", h.getDetection)
			r.Patch("/detections/{detectionID}", h.updateDetection)
			r.Delete("/detections/{detectionID}", h.deleteDetection)
		})

		// trusted AI-service route, guarded by the shared API key instead of
		// record ownership
		r.Group(func(r chi.Router) {
			r.Use(h.requireAPIKey)

			r.Post("/detections/ai/process/{detectionID}", h.processResult)
		})
	})

	return router
}
