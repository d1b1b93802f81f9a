package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/civic")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	t.Setenv("DB_CONN_MAX_LIFETIME", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5050", cfg.Port)
	assert.Equal(t, 10, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/civic")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8001")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("DB_CONN_MAX_LIFETIME", "5m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8001", cfg.Port)
	assert.Equal(t, 4, cfg.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingDatabaseURL)

	t.Setenv("DATABASE_URL", "postgres://localhost/civic")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_JWT_PUBLIC_KEY", "")
	_, err = Load()
	assert.ErrorIs(t, err, ErrMissingTokenKey)

	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	_, err = Load()
	assert.ErrorContains(t, err, "DB_MAX_OPEN_CONNS")
}

func TestLoadDB_NeedsNoTokenKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/civic")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_JWT_PUBLIC_KEY", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	t.Setenv("DB_CONN_MAX_LIFETIME", "")

	cfg, err := LoadDB()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/civic", cfg.DatabaseURL)
	assert.Equal(t, 3, cfg.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)

	_, err = Load()
	assert.ErrorIs(t, err, ErrMissingTokenKey)
}

func TestLoadDB_MissingURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "  ")
	_, err := LoadDB()
	assert.ErrorIs(t, err, ErrMissingDatabaseURL)
}

func TestLoadIngest(t *testing.T) {
	cfg, err := LoadIngest("")
	require.NoError(t, err)
	assert.Equal(t, DefaultIngest(), cfg)

	cfg, err = LoadIngest(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultIngest(), cfg)

	path := filepath.Join(t.TempDir(), "ingest.yaml")
	yml := `
requests_per_second: 0.5
crime:
  offenses: [Homicide, Robbery]
  from_year: 2020
census:
  years: [2022]
health:
  measures:
    - name: Heart Diseases
      upstream: Cardiovascular Diseases
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err = LoadIngest(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.RequestsPerSecond)
	assert.Equal(t, []string{"Homicide", "Robbery"}, cfg.Crime.Offenses)
	assert.Equal(t, 2020, cfg.Crime.FromYear)
	assert.Equal(t, 2024, cfg.Crime.ToYear, "unset keys keep defaults")
	assert.Equal(t, []int{2022}, cfg.Census.Years)
	require.Len(t, cfg.Health.Measures, 1)
	assert.Equal(t, "Cardiovascular Diseases", cfg.Health.Measures[0].Upstream)
}

func TestLoadIngest_InvalidRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ingest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("requests_per_second: 0\n"), 0o600))

	_, err := LoadIngest(path)
	assert.ErrorContains(t, err, "requests_per_second")
}
