package crime

import (
	"net/http"

	"github.com/EmpoweredVote/civic-data-backend/internal/httpx"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// GetCrimeData returns one offense type for a state, oldest year first.
func (h *Handler) GetCrimeData(w http.ResponseWriter, r *http.Request) {
	state, err := resolveState(httpx.PathParam(r, "state"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	crimeType, err := resolveType(httpx.PathParam(r, "crime_type"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	rows, err := h.store.ByType(r.Context(), state, crimeType)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, rows)
}

// GetAllStateCrime returns every offense type for a state.
func (h *Handler) GetAllStateCrime(w http.ResponseWriter, r *http.Request) {
	state, err := resolveState(httpx.PathParam(r, "state"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	rows, err := h.store.AllForState(r.Context(), state)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, rows)
}

func (h *Handler) SetupRoutes(r chi.Router) {
	r.Get("/get_crime_data/{state}/{crime_type}", h.GetCrimeData)
	r.Get("/get_all_state_crime/{state}", h.GetAllStateCrime)
}
