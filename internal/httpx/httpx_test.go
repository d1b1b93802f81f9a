package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type teapotErr struct{}

func (teapotErr) Error() string   { return "short and stout" }
func (teapotErr) StatusCode() int { return http.StatusTeapot }

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(NotFound("state", "Atlantis")))
	assert.Equal(t, http.StatusNotFound, StatusFor(fmt.Errorf("lookup: %w", NotFound("crime type", "Piracy"))))
	assert.Equal(t, http.StatusTeapot, StatusFor(fmt.Errorf("wrapped: %w", teapotErr{})))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestError_WritesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/get_census_data/Atlantis", nil)

	Error(rec, req, NotFound("state", "Atlantis"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unknown state: Atlantis", body.Detail)
}

func TestError_GenericServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/get_federal_debt", nil)

	Error(rec, req, errors.New(`relation "civic.federal_debt" does not exist`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"relation \"civic.federal_debt\" does not exist"}`, rec.Body.String())
}

func TestPathParam(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain", "/items/Illinois", "Illinois"},
		{"decoded by router", "/items/New%20York", "New York"},
		{"escaped slash", "/items/HIV%2FAIDS", "HIV/AIDS"},
		{"literal percent sequence", "/items/Suite%2541", "Suite%41"},
		{"literal percent with escaped slash", "/items/50%25%2F50", "50%/50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			r := chi.NewRouter()
			r.Get("/items/{key}", func(w http.ResponseWriter, r *http.Request) {
				got = PathParam(r, "key")
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, got)
		})
	}
}
