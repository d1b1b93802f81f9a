package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/EmpoweredVote/civic-data-backend/internal/auth"
	"github.com/EmpoweredVote/civic-data-backend/internal/middleware"
	"github.com/EmpoweredVote/civic-data-backend/internal/utils"
)

// mockVerifier implements auth.Verifier without any key material.
type mockVerifier struct {
	claims auth.Claims
	err    error
	calls  int
	seen   string
}

func (m *mockVerifier) Verify(token string) (auth.Claims, error) {
	m.calls++
	m.seen = token
	return m.claims, m.err
}

// callWithHeader wraps a simple 200-OK inner handler in the provided middleware,
// optionally setting the Authorization header, and returns the recorded response
// plus whether the inner handler ran.
func callWithHeader(t *testing.T, mw func(http.Handler) http.Handler, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reached := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	handler := mw(inner)
	req := httptest.NewRequest(http.MethodGet, "/get_census_data/IL", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, reached
}

// TestRequireBearer_MissingHeader verifies that a request with no Authorization
// header receives a 401 and never reaches the handler or the verifier.
func TestRequireBearer_MissingHeader(t *testing.T) {
	verifier := &mockVerifier{}
	rec, reached := callWithHeader(t, middleware.RequireBearer(verifier), "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if reached {
		t.Error("inner handler must not run without a token")
	}
	if verifier.calls != 0 {
		t.Errorf("verifier should not be called, got %d calls", verifier.calls)
	}
	if !strings.Contains(rec.Body.String(), "Missing or invalid Authorization header") {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}

// TestRequireBearer_WrongScheme verifies that non-bearer schemes are rejected.
func TestRequireBearer_WrongScheme(t *testing.T) {
	verifier := &mockVerifier{}
	rec, reached := callWithHeader(t, middleware.RequireBearer(verifier), "Basic dXNlcjpwYXNz")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if reached {
		t.Error("inner handler must not run with a Basic credential")
	}
}

// TestRequireBearer_InvalidToken verifies that a verifier error results in a 401.
func TestRequireBearer_InvalidToken(t *testing.T) {
	verifier := &mockVerifier{err: errors.Join(auth.ErrInvalidToken, errors.New("token is expired"))}
	rec, reached := callWithHeader(t, middleware.RequireBearer(verifier), "Bearer expired-token")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if reached {
		t.Error("inner handler must not run with an invalid token")
	}
	if verifier.seen != "expired-token" {
		t.Errorf("expected verifier to see the raw token, got %q", verifier.seen)
	}
	if !strings.Contains(rec.Body.String(), "Invalid or expired token") {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}

// TestRequireBearer_ValidToken verifies that a valid token reaches the handler
// and that the subject is injected into the context.
func TestRequireBearer_ValidToken(t *testing.T) {
	const wantUserID = "test-user-123"
	verifier := &mockVerifier{claims: auth.Claims{Subject: wantUserID}}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "userID not in context", http.StatusInternalServerError)
			return
		}
		if gotUserID != wantUserID {
			http.Error(w, "wrong userID in context: "+gotUserID, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.RequireBearer(verifier)(inner)
	req := httptest.NewRequest(http.MethodGet, "/get_user_interests", nil)
	req.Header.Set("Authorization", "bearer  valid-token ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
	if verifier.seen != "valid-token" {
		t.Errorf("expected trimmed token, got %q", verifier.seen)
	}
}

// TestCORS_AllowList verifies that only allow-listed origins are echoed back.
func TestCORS_AllowList(t *testing.T) {
	mw := middleware.CORS([]string{"http://localhost:3000"})
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected origin echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://elsewhere.test")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header for unknown origin, got %q", got)
	}
}

// TestCORS_Preflight verifies that OPTIONS short-circuits with 204.
func TestCORS_Preflight(t *testing.T) {
	reached := false
	handler := middleware.CORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/legislators/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if reached {
		t.Error("preflight must not reach the handler")
	}
}
