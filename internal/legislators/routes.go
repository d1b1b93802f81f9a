package legislators

import "github.com/go-chi/chi/v5"

// SetupRoutes registers the legislator endpoints on an authenticated router.
func (h *Handler) SetupRoutes(r chi.Router) {
	r.Get("/legislators/{address}", h.GetLegislators)
}
