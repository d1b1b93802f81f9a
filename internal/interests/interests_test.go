package interests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/EmpoweredVote/civic-data-backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store that records the keys it was given.
type memStore struct {
	rows map[string][]string
}

func newMemStore() *memStore { return &memStore{rows: map[string][]string{}} }

func (m *memStore) Put(_ context.Context, hashedID string, interests []string) error {
	m.rows[hashedID] = append([]string(nil), interests...)
	return nil
}

func (m *memStore) Get(_ context.Context, hashedID string) ([]string, bool, error) {
	v, ok := m.rows[hashedID]
	return v, ok, nil
}

func mustHasher(t *testing.T, key string) *Hasher {
	t.Helper()
	h, err := NewHasher(key)
	require.NoError(t, err)
	return h
}

func TestHashUserID(t *testing.T) {
	h := mustHasher(t, "")
	a := h.HashUserID("user-123")

	assert.Len(t, a, 64)
	assert.Equal(t, a, h.HashUserID("user-123"))
	assert.NotEqual(t, a, h.HashUserID("user-124"))
	assert.NotContains(t, a, "user-123")

	keyed := mustHasher(t, "pepper").HashUserID("user-123")
	assert.NotEqual(t, a, keyed)
}

func TestNewHasher_KeyTooLong(t *testing.T) {
	_, err := NewHasher(strings.Repeat("k", 65))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []string{"Healthcare", "Education"}, Normalize([]string{"Healthcare", "", "  ", "Education", "Healthcare"}))
	assert.Equal(t, []string{" Health ", "Health"}, Normalize([]string{" Health ", "Health"}))
	assert.NotNil(t, Normalize(nil))
}

func TestService_FetchReturnsSavedStringsVerbatim(t *testing.T) {
	svc := NewService(newMemStore(), mustHasher(t, "k"))
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, "carol", []string{" Health ", "Public Safety", " Health "}))

	got, found, err := svc.Fetch(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{" Health ", "Public Safety"}, got)
}

func TestService_LastWriteWinsAndIsolation(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, mustHasher(t, "k"))
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, "alice", []string{"Economy", "Crime"}))
	require.NoError(t, svc.Save(ctx, "alice", []string{"Health"}))
	require.NoError(t, svc.Save(ctx, "bob", []string{"Environment"}))

	got, found, err := svc.Fetch(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"Health"}, got)

	got, _, _ = svc.Fetch(ctx, "bob")
	assert.Equal(t, []string{"Environment"}, got)

	_, found, err = svc.Fetch(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, found)

	for key := range store.rows {
		assert.NotEqual(t, "alice", key)
		assert.NotEqual(t, "bob", key)
	}
}

func serve(h *Handler, method, path, body, userID string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.SetupRoutes(r)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(utils.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandlers_SaveThenGet(t *testing.T) {
	h := NewHandler(NewService(newMemStore(), mustHasher(t, "")))

	rec := serve(h, http.MethodPost, "/save_user_interests", `{"interests":["Taxes","Housing"]}`, "sub-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","message":"User interests saved successfully"}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/get_user_interests", "", "sub-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"interests":["Taxes","Housing"]}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/get_user_interests", "", "sub-2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"interests":[],"message":"No interests found"}`, rec.Body.String())
}

func TestHandlers_InvalidBody(t *testing.T) {
	h := NewHandler(NewService(newMemStore(), mustHasher(t, "")))
	rec := serve(h, http.MethodPost, "/save_user_interests", `{"interests":`, "sub-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, http.MethodPost, "/save_user_interests", `{"interests":"Taxes"}`, "sub-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlers_NoUserInContext(t *testing.T) {
	h := NewHandler(NewService(newMemStore(), mustHasher(t, "")))
	assert.Equal(t, http.StatusUnauthorized, serve(h, http.MethodGet, "/get_user_interests", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, http.MethodPost, "/save_user_interests", `{}`, "").Code)
}
