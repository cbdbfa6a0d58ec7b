package numbers

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all number endpoints onto the given router
// under the /numbers prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/numbers", func(r chi.Router) {
		r.Post("/gaps", h.Gaps)
		r.Post("/expression", h.Expression)
	})
}
