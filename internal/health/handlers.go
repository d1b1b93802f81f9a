package health

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

// GetHealthData returns one measure for a state, oldest year first.
// "HIV/AIDS" arrives escaped as HIV%2FAIDS.
func (h *Handler) GetHealthData(w http.ResponseWriter, r *http.Request) {
	stateKey := httpx.PathParam(r, "state")
	code, ok := states.Code(stateKey)
	if !ok {
		httpx.Error(w, r, httpx.NotFound("state", stateKey))
		return
	}

	name := httpx.PathParam(r, "name")
	measure, ok := LookupMeasure(name)
	if !ok {
		httpx.Error(w, r, httpx.NotFound("health measure", name))
		return
	}

	rows, err := h.store.ByStateAndMeasure(r.Context(), code, measure)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, rows)
}

func (h *Handler) SetupRoutes(r chi.Router) {
	r.Get("/get_health_data/{state}/{name}", h.GetHealthData)
}
