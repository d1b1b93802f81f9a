package legislation

import (
	"context"

	"github.com/EmpoweredVote/civic-data-backend/internal/db"
	"github.com/EmpoweredVote/civic-data-backend/internal/ingest"
	"gorm.io/gorm"
)

type Store interface {
	// Recent returns up to limit bills, most recent action first.
	Recent(ctx context.Context, limit int) ([]Bill, error)
}

type GormStore struct {
	pool *db.Pool
}

func NewStore(pool *db.Pool) *GormStore {
	return &GormStore{pool: pool}
}

func (s *GormStore) Recent(ctx context.Context, limit int) ([]Bill, error) {
	rows := []Bill{}
	err := s.pool.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Order("action_date DESC, congress DESC, bill_type ASC, number ASC").
			Limit(limit).
			Find(&rows).Error
	})
	if err != nil {
		return nil, db.Wrap(err)
	}
	return rows, nil
}

func Migrate(tx *gorm.DB) error {
	return db.Migrate(tx, &Bill{})
}

func Save(tx *gorm.DB, rows []Bill) error {
	return ingest.Upsert(tx, source, &rows, len(rows),
		[]string{"congress", "bill_type", "number"},
		[]string{"title", "action_date", "action", "chamber", "url"})
}
