package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DBConfig holds the database settings shared by the server and the
// ingestion binary.
type DBConfig struct {
	DatabaseURL string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogSQL          bool
}

// Config holds server configuration read from the environment.
type Config struct {
	DBConfig

	Port           string
	AllowedOrigins []string

	// Bearer-token verification. Exactly one of JWTSecret or JWTPublicKey
	// must be set.
	JWTSecret    string
	JWTPublicKey string
	JWTIssuer    string
	JWTAudience  string

	GeocodioKey     string
	InterestHashKey string
}

// ErrMissingDatabaseURL is returned when DATABASE_URL is unset.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is empty")

// ErrMissingTokenKey is returned when neither AUTH_JWT_SECRET nor
// AUTH_JWT_PUBLIC_KEY is set.
var ErrMissingTokenKey = errors.New("AUTH_JWT_SECRET or AUTH_JWT_PUBLIC_KEY is required")

// LoadDotEnv loads .env.local if it exists. A missing file is not an error.
func LoadDotEnv() {
	_ = godotenv.Load(".env.local")
}

// LoadDB reads only the database settings. Binaries that never serve
// requests use it so they do not need token keys.
//
// Environment variables:
//   - DATABASE_URL (required)
//   - DB_MAX_OPEN_CONNS / DB_MAX_IDLE_CONNS (default: 10 / 10)
//   - DB_CONN_MAX_LIFETIME (default: 30m)
//   - LOG_SQL: "true" for verbose gorm logging
func LoadDB() (DBConfig, error) {
	cfg := DBConfig{
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		LogSQL:      strings.EqualFold(os.Getenv("LOG_SQL"), "true"),
	}

	var err error
	if cfg.MaxOpenConns, err = envInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return DBConfig{}, err
	}
	if cfg.MaxIdleConns, err = envInt("DB_MAX_IDLE_CONNS", 10); err != nil {
		return DBConfig{}, err
	}
	if cfg.ConnMaxLifetime, err = envDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return DBConfig{}, err
	}

	if cfg.DatabaseURL == "" {
		return DBConfig{}, ErrMissingDatabaseURL
	}
	return cfg, nil
}

// Load reads the server configuration: everything LoadDB reads plus
//   - PORT (default: 5050)
//   - CORS_ALLOWED_ORIGINS: comma separated (default: http://localhost:3000)
//   - AUTH_JWT_SECRET or AUTH_JWT_PUBLIC_KEY (PEM), AUTH_JWT_ISSUER, AUTH_JWT_AUDIENCE
//   - GEOCODIO_API_KEY
//   - INTEREST_HASH_KEY: optional pepper for hashing user ids
func Load() (Config, error) {
	dbCfg, err := LoadDB()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBConfig:        dbCfg,
		Port:            envOr("PORT", "5050"),
		AllowedOrigins:  splitList(envOr("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		JWTSecret:       os.Getenv("AUTH_JWT_SECRET"),
		JWTPublicKey:    os.Getenv("AUTH_JWT_PUBLIC_KEY"),
		JWTIssuer:       os.Getenv("AUTH_JWT_ISSUER"),
		JWTAudience:     os.Getenv("AUTH_JWT_AUDIENCE"),
		GeocodioKey:     os.Getenv("GEOCODIO_API_KEY"),
		InterestHashKey: os.Getenv("INTEREST_HASH_KEY"),
	}
	if cfg.JWTSecret == "" && cfg.JWTPublicKey == "" {
		return Config{}, ErrMissingTokenKey
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
