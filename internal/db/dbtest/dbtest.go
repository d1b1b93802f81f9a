// Package dbtest opens the integration-test database.
package dbtest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/EmpoweredVote/civic-data-backend/internal/db"
	"github.com/joho/godotenv"
)

// Open returns a pool on DATABASE_URL, loading .env.local from the module
// root first. The test is skipped when no database is configured.
func Open(t *testing.T) *db.Pool {
	t.Helper()

	_, file, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(file), "..", "..", "..")
	_ = godotenv.Load(filepath.Join(root, ".env.local"))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	pool, err := db.Open(db.PoolConfig{
		DSN:             dsn,
		MaxOpenConns:    2,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })
	return pool
}
