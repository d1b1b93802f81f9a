// Package ingest runs the offline jobs that copy public datasets into the
// civic schema.
package ingest

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/EmpoweredVote/civic-data-backend/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Env is what a job gets to work with.
type Env struct {
	RunID  string
	Client *Client
	Pool   *db.Pool
}

// JobFunc performs one job and returns the number of rows written.
type JobFunc func(ctx context.Context, env Env) (int, error)

// Counter records rows written per job (the metrics registry in production).
type Counter interface {
	RowsUpserted(job string, n int)
}

// Runner holds the registered jobs.
type Runner struct {
	jobs    map[string]JobFunc
	client  *Client
	pool    *db.Pool
	counter Counter
}

func NewRunner(client *Client, pool *db.Pool, counter Counter) *Runner {
	return &Runner{jobs: map[string]JobFunc{}, client: client, pool: pool, counter: counter}
}

// Register adds a job under name. Registering a name twice panics.
func (r *Runner) Register(name string, fn JobFunc) {
	if _, dup := r.jobs[name]; dup {
		panic("ingest: duplicate job " + name)
	}
	r.jobs[name] = fn
}

// Jobs lists registered job names in sorted order.
func (r *Runner) Jobs() []string {
	names := make([]string, 0, len(r.jobs))
	for n := range r.jobs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Run executes the named jobs in order, stopping at the first failure.
func (r *Runner) Run(ctx context.Context, names ...string) error {
	runID := uuid.NewString()
	env := Env{RunID: runID, Client: r.client, Pool: r.pool}

	for _, name := range names {
		fn, ok := r.jobs[name]
		if !ok {
			return fmt.Errorf("unknown job %q (known: %v)", name, r.Jobs())
		}

		log.Printf("[ingest] run=%s job=%s starting", runID, name)
		start := time.Now()
		n, err := fn(ctx, env)
		if err != nil {
			log.Printf("[ingest] run=%s job=%s failed after %s: %v", runID, name, time.Since(start).Round(time.Millisecond), err)
			return fmt.Errorf("job %s: %w", name, err)
		}
		if r.counter != nil {
			r.counter.RowsUpserted(name, n)
		}
		log.Printf("[ingest] run=%s job=%s wrote %d rows in %s", runID, name, n, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// InTx runs fn in a transaction on one pooled connection, so a job's
// writes land together or not at all.
func InTx(ctx context.Context, pool *db.Pool, fn func(tx *gorm.DB) error) error {
	return pool.WithConn(ctx, func(conn *gorm.DB) error {
		return conn.Transaction(fn)
	})
}
