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

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/request-code", h.requestCode)
		r.Post("/api/auth/verify-code", h.verifyCode)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes that require a valid session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/me", h.currentUser)
	})

	return router
}
