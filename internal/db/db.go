package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolConfig holds connection pool limits.
type PoolConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	VerboseSQL      bool
}

// Pool owns the process-wide database handle. It is created once in main
// and handed to every store; nothing in the request path opens its own.
type Pool struct {
	db *gorm.DB
}

// Open connects to Postgres and applies the pool limits.
func Open(cfg PoolConfig) (*Pool, error) {
	if cfg.DSN == "" {
		return nil, errors.New("DATABASE_URL is empty")
	}

	level := logger.Warn
	if cfg.VerboseSQL {
		level = logger.Info
	}

	// Surface slow queries in the service logs.
	lg := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             100 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: lg,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Println("Connected to database")
	return &Pool{db: gdb}, nil
}

// NewPool wraps an existing gorm handle. Used by tools and tests that
// already hold a connection.
func NewPool(gdb *gorm.DB) *Pool {
	return &Pool{db: gdb}
}

// WithConn checks out a single connection, runs fn against it and returns
// the connection to the pool on every exit path, including panics.
func (p *Pool) WithConn(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := p.db.WithContext(ctx).Connection(fn)
	return Classify(err)
}

// Ping verifies the pool can reach the database.
func (p *Pool) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Gorm exposes the underlying handle for migrations and offline jobs.
func (p *Pool) Gorm() *gorm.DB {
	return p.db
}

// Close tears the pool down. Safe to call once at shutdown.
func (p *Pool) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
