package spending

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

func (h *Handler) GetAgencySpending(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.Breakdown(r.Context())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, b)
}

type economicResponse struct {
	EconomicData []EconomicIndicator `json:"economic_data"`
}

func (h *Handler) GetFederalEconomicData(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.EconomicIndicators(r.Context())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, economicResponse{EconomicData: rows})
}

func (h *Handler) GetFederalDebt(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.DebtHistory(r.Context())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, d)
}

func (h *Handler) SetupRoutes(r chi.Router) {
	r.Get("/get_agency_spending", h.GetAgencySpending)
	r.Get("/get_federal_economic_data", h.GetFederalEconomicData)
	r.Get("/get_federal_debt", h.GetFederalDebt)
}
