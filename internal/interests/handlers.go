package interests

import (
	"context"
	"net/http"

	"github.com/EmpoweredVote/civic-data-backend/internal/httpx"
	"github.com/EmpoweredVote/civic-data-backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

type Saver interface {
	Save(ctx context.Context, userID string, interests []string) error
	Fetch(ctx context.Context, userID string) ([]string, bool, error)
}

type Handler struct {
	svc Saver
}

func NewHandler(svc Saver) *Handler {
	return &Handler{svc: svc}
}

type saveRequest struct {
	Interests []string `json:"interests"`
}

type saveResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type interestsResponse struct {
	Interests []string `json:"interests"`
	Message   string   `json:"message,omitempty"`
}

func (h *Handler) SaveUserInterests(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		httpx.Detail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req saveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.Save(r.Context(), userID, req.Interests); err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, saveResponse{Status: "success", Message: "User interests saved successfully"})
}

func (h *Handler) GetUserInterests(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		httpx.Detail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	interests, found, err := h.svc.Fetch(r.Context(), userID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	if !found || len(interests) == 0 {
		httpx.OK(w, interestsResponse{Interests: []string{}, Message: "No interests found"})
		return
	}
	httpx.OK(w, interestsResponse{Interests: interests})
}

func (h *Handler) SetupRoutes(r chi.Router) {
	r.Post("/save_user_interests", h.SaveUserInterests)
	r.Get("/get_user_interests", h.GetUserInterests)
}
