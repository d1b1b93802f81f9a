package legislators

import (
	"context"

	"github.com/EmpoweredVote/civic-data-backend/internal/db"
	"gorm.io/gorm"
)

// Store reads the legislator tables.
type Store interface {
	// Seat returns the senators for state and the representatives for
	// (state, district), read on a single connection.
	Seat(ctx context.Context, state string, district int) ([]Senator, []Representative, error)
}

// GormStore is the Postgres-backed Store.
type GormStore struct {
	pool *db.Pool
}

func NewStore(pool *db.Pool) *GormStore {
	return &GormStore{pool: pool}
}

func (s *GormStore) Seat(ctx context.Context, state string, district int) ([]Senator, []Representative, error) {
	var senators []Senator
	var reps []Representative

	err := s.pool.WithConn(ctx, func(tx *gorm.DB) error {
		// One row past the cap so the resolver can spot duplicate seats.
		if err := tx.Where("state = ?", state).
			Order("id ASC").
			Limit(MaxSenators + 1).
			Find(&senators).Error; err != nil {
			return err
		}
		return tx.Where("state = ? AND district = ?", state, district).
			Order("id ASC").
			Limit(MaxRepresentatives + 1).
			Find(&reps).Error
	})
	if err != nil {
		return nil, nil, db.Wrap(err)
	}
	return senators, reps, nil
}

// Migrate creates the legislator tables.
func Migrate(tx *gorm.DB) error {
	return db.Migrate(tx, &Senator{}, &Representative{})
}
