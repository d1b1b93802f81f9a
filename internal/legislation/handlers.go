package legislation

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/EmpoweredVote/civic-data-backend/internal/httpx"
	"github.com/go-chi/chi/v5"
)

const (
	DefaultLimit = 10
	MaxLimit     = 250
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// GetRecentLegislation lists the most recently acted-on bills.
// ?limit= overrides the default count, up to MaxLimit.
func (h *Handler) GetRecentLegislation(w http.ResponseWriter, r *http.Request) {
	limit := DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpx.Detail(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw))
			return
		}
		if n > MaxLimit {
			n = MaxLimit
		}
		limit = n
	}

	bills, err := h.store.Recent(r.Context(), limit)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	out := make([]Summary, 0, len(bills))
	for _, b := range bills {
		out = append(out, ToSummary(b))
	}
	httpx.OK(w, out)
}

func (h *Handler) SetupRoutes(r chi.Router) {
	r.Get("/get_recent_legislation", h.GetRecentLegislation)
}
