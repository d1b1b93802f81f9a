package legislators

import (
	"context"
	"net/http"

	"github.com/EmpoweredVote/civic-data-backend/internal/httpx"
)

// Resolving is the operation the HTTP layer needs.
type Resolving interface {
	Resolve(ctx context.Context, address string) ([]Legislator, error)
}

type Handler struct {
	resolver Resolving
}

func NewHandler(resolver Resolving) *Handler {
	return &Handler{resolver: resolver}
}

type legislatorsResponse struct {
	Legislators []Legislator `json:"legislators"`
}

// GetLegislators resolves an address to its senators and representative.
func (h *Handler) GetLegislators(w http.ResponseWriter, r *http.Request) {
	address := httpx.PathParam(r, "address")

	legislators, err := h.resolver.Resolve(r.Context(), address)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.OK(w, legislatorsResponse{Legislators: legislators})
}
