package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the API endpoints on r.
func Routes(r chi.Router, limits Limits) {
	h := NewAlignment(limits)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/alignment", func(r chi.Router) {
			r.Post("/global", h.Global)
			r.Post("/local", h.Local)
			r.Post("/score", h.Score)
			r.Post("/pairs", h.Pairs)
		})

		r.Route("/input", func(r chi.Router) {
			r.Post("/parse", ParseInputHandler)
		})
	})
}
