package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EmpoweredVote/civic-data-backend/internal/auth"
	"github.com/EmpoweredVote/civic-data-backend/internal/census"
	"github.com/EmpoweredVote/civic-data-backend/internal/config"
	"github.com/EmpoweredVote/civic-data-backend/internal/crime"
	"github.com/EmpoweredVote/civic-data-backend/internal/db"
	"github.com/EmpoweredVote/civic-data-backend/internal/geocoding"
	"github.com/EmpoweredVote/civic-data-backend/internal/health"
	"github.com/EmpoweredVote/civic-data-backend/internal/interests"
	"github.com/EmpoweredVote/civic-data-backend/internal/legislation"
	"github.com/EmpoweredVote/civic-data-backend/internal/legislators"
	"github.com/EmpoweredVote/civic-data-backend/internal/metrics"
	"github.com/EmpoweredVote/civic-data-backend/internal/schema"
	"github.com/EmpoweredVote/civic-data-backend/internal/spending"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	pool, err := db.Open(db.PoolConfig{
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		VerboseSQL:      cfg.LogSQL,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := schema.Migrate(pool); err != nil {
		log.Fatal(err)
	}

	verifier, err := auth.NewJWTVerifier(auth.Options{
		Secret:       cfg.JWTSecret,
		PublicKeyPEM: cfg.JWTPublicKey,
		Issuer:       cfg.JWTIssuer,
		Audience:     cfg.JWTAudience,
	})
	if err != nil {
		log.Fatal(err)
	}

	hasher, err := interests.NewHasher(cfg.InterestHashKey)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.GeocodioKey == "" {
		log.Println("WARNING: GEOCODIO_API_KEY is not set; /legislators lookups will fail")
	}

	resolver := legislators.NewResolver(
		geocoding.NewClient(cfg.GeocodioKey, geocoding.DefaultBaseURL),
		legislators.NewStore(pool),
	)

	r := newRouter(routerDeps{
		verifier:       verifier,
		allowedOrigins: cfg.AllowedOrigins,
		metrics:        metrics.New(),
		pinger:         pool,
		services: []routeSetter{
			legislators.NewHandler(resolver),
			crime.NewHandler(crime.NewStore(pool)),
			census.NewHandler(census.NewStore(pool)),
			health.NewHandler(health.NewStore(pool)),
			spending.NewHandler(spending.NewStore(pool)),
			legislation.NewHandler(legislation.NewStore(pool)),
			interests.NewHandler(interests.NewService(interests.NewStore(pool), hasher)),
		},
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port :%s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
