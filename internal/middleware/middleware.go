package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/EmpoweredVote/civic-data-backend/internal/auth"
	"github.com/EmpoweredVote/civic-data-backend/internal/httpx"
	"github.com/EmpoweredVote/civic-data-backend/internal/utils"
)

// RequireBearer rejects requests without a valid "Authorization: Bearer"
// token before any handler runs. On success the token subject is placed in
// the request context.
func RequireBearer(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, auth.ErrMissingToken)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				log.Printf("[auth] %s %s rejected: %v", r.Method, r.URL.Path, err)
				unauthorized(w, err)
				return
			}

			ctx := utils.WithUserID(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, err error) {
	msg := "Invalid or expired token"
	if errors.Is(err, auth.ErrMissingToken) {
		msg = "Missing or invalid Authorization header"
	}
	w.Header().Set("WWW-Authenticate", "Bearer")
	httpx.Detail(w, http.StatusUnauthorized, msg)
}

// CORS echoes the Origin back only when it is on the allow-list.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin") // important for caches
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods",
					"GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers",
					"Content-Type, Authorization")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
