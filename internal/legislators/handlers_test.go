package legislators

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	out  []Legislator
	err  error
	seen string
}

func (s *stubResolver) Resolve(_ context.Context, address string) ([]Legislator, error) {
	s.seen = address
	return s.out, s.err
}

func serve(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	h.SetupRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetLegislators_UnescapesAddress(t *testing.T) {
	res := &stubResolver{out: []Legislator{{Name: "Dick Durbin", Role: RoleSenator}}}
	rec := serve(t, NewHandler(res), "/legislators/233%20S%20Wacker%20Dr%2C%20Chicago")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "233 S Wacker Dr, Chicago", res.seen)

	var body struct {
		Legislators []Legislator `json:"legislators"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Legislators, 1)
	assert.Equal(t, RoleSenator, body.Legislators[0].Role)
}

func TestGetLegislators_DecodesAddressOnce(t *testing.T) {
	res := &stubResolver{out: []Legislator{}}
	rec := serve(t, NewHandler(res), "/legislators/12%20Main%20St%20Suite%2541")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12 Main St Suite%41", res.seen)
}

func TestGetLegislators_EmptyListSerializesAsArray(t *testing.T) {
	rec := serve(t, NewHandler(&stubResolver{out: []Legislator{}}), "/legislators/somewhere")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"legislators": []}`, rec.Body.String())
}

func TestGetLegislators_UnresolvableAddress(t *testing.T) {
	res := &stubResolver{err: &ResolutionError{Address: "x", Err: assert.AnError}}
	rec := serve(t, NewHandler(res), "/legislators/x")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "could not resolve address")
}
