package main

import (
	"context"
	"net/http"

	"github.com/EmpoweredVote/civic-data-backend/internal/auth"
	"github.com/EmpoweredVote/civic-data-backend/internal/httpx"
	"github.com/EmpoweredVote/civic-data-backend/internal/metrics"
	"github.com/EmpoweredVote/civic-data-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// routeSetter is implemented by every domain handler.
type routeSetter interface {
	SetupRoutes(r chi.Router)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	verifier       auth.Verifier
	allowedOrigins []string
	metrics        *metrics.Metrics
	pinger         pinger
	services       []routeSetter
}

func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(d.allowedOrigins))
	r.Use(d.metrics.Middleware)

	r.Get("/", RootHandler)
	r.Get("/healthz", healthzHandler(d.pinger))
	r.Method(http.MethodGet, "/metrics", d.metrics.Handler())

	// Everything else requires a bearer token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireBearer(d.verifier))
		for _, s := range d.services {
			s.SetupRoutes(r)
		}
	})
	return r
}

func healthzHandler(p pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := p.Ping(r.Context()); err != nil {
			httpx.Detail(w, http.StatusServiceUnavailable, "database unavailable: "+err.Error())
			return
		}
		httpx.OK(w, map[string]string{"status": "ok"})
	}
}
