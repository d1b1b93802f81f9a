package crime

import (
	"context"

	"github.com/EmpoweredVote/civic-data-backend/internal/db"
	"gorm.io/gorm"
)

// Store reads crime rows by canonical key (full state name, catalogued type).
type Store interface {
	ByType(ctx context.Context, state, crimeType string) ([]Record, error)
	AllForState(ctx context.Context, state string) ([]Record, error)
}

type GormStore struct {
	pool *db.Pool
}

func NewStore(pool *db.Pool) *GormStore {
	return &GormStore{pool: pool}
}

func (s *GormStore) ByType(ctx context.Context, state, crimeType string) ([]Record, error) {
	rows := []Record{}
	err := s.pool.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Where("state = ? AND crime_type = ?", state, crimeType).
			Order("year ASC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, db.Wrap(err)
	}
	return rows, nil
}

func (s *GormStore) AllForState(ctx context.Context, state string) ([]Record, error) {
	rows := []Record{}
	err := s.pool.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Where("state = ?", state).
			Order("crime_type ASC, year ASC").
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

// Save upserts rows on (state, year, crime_type).
func Save(tx *gorm.DB, rows []Record) error {
	return upsert(tx, rows)
}
