package census

import (
	"net/http"

	"github.com/EmpoweredVote/civic-data-backend/internal/httpx"
	"github.com/EmpoweredVote/civic-data-backend/internal/states"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) GetCensusData(w http.ResponseWriter, r *http.Request) {
	key := httpx.PathParam(r, "state")
	state, ok := states.FullName(key)
	if !ok {
		httpx.Error(w, r, httpx.NotFound("state", key))
		return
	}

	rows, err := h.store.ByState(r.Context(), state)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, rows)
}

func (h *Handler) SetupRoutes(r chi.Router) {
	r.Get("/get_census_data/{state}", h.GetCensusData)
}
