package health

import (
	"context"

	"github.com/EmpoweredVote/civic-data-backend/internal/db"
	"github.com/EmpoweredVote/civic-data-backend/internal/ingest"
	"gorm.io/gorm"
)

type Store interface {
	ByStateAndMeasure(ctx context.Context, state, measure string) ([]Record, error)
}

type GormStore struct {
	pool *db.Pool
}

func NewStore(pool *db.Pool) *GormStore {
	return &GormStore{pool: pool}
}

func (s *GormStore) ByStateAndMeasure(ctx context.Context, state, measure string) ([]Record, error) {
	rows := []Record{}
	err := s.pool.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Where("state = ? AND measure_name = ?", state, measure).
			Order("year ASC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, db.Wrap(err)
	}
	return rows, nil
}

func Migrate(tx *gorm.DB) error {
	return db.Migrate(tx, &Record{})
}

// Save upserts rows on (state, year, measure_name).
func Save(tx *gorm.DB, rows []Record) error {
	return ingest.Upsert(tx, source, &rows, len(rows),
		[]string{"state", "year", "measure_name"}, []string{"rank", "value"})
}
