package census

import (
	"context"

	"github.com/EmpoweredVote/civic-data-backend/internal/db"
	"github.com/EmpoweredVote/civic-data-backend/internal/ingest"
	"gorm.io/gorm"
)

type Store interface {
	// ByState returns a state's rows oldest year first. state is the full name.
	ByState(ctx context.Context, state string) ([]Record, error)
}

type GormStore struct {
	pool *db.Pool
}

func NewStore(pool *db.Pool) *GormStore {
	return &GormStore{pool: pool}
}

func (s *GormStore) ByState(ctx context.Context, state string) ([]Record, error) {
	rows := []Record{}
	err := s.pool.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Where("state = ?", state).Order("year ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, db.Wrap(err)
	}
	return rows, nil
}

func Migrate(tx *gorm.DB) error {
	return db.Migrate(tx, &Record{})
}

// Save upserts rows on (state, year).
func Save(tx *gorm.DB, rows []Record) error {
	return ingest.Upsert(tx, source, &rows, len(rows),
		[]string{"state", "year"},
		[]string{"poverty_rate", "educational_attainment", "income_mean", "income_median"})
}
