package interests

import (
	"context"
	"errors"
	"time"

	"github.com/EmpoweredVote/civic-data-backend/internal/db"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserInterests is keyed by the hashed identifier only.
type UserInterests struct {
	HashedUserID string         `gorm:"primaryKey;size:64"`
	Interests    pq.StringArray `gorm:"type:text[];not null"`
	UpdatedAt    time.Time
}

func (UserInterests) TableName() string { return "civic.user_interests" }

// Store persists interest sets by hashed identifier.
type Store interface {
	Put(ctx context.Context, hashedID string, interests []string) error
	// Get reports found=false when no row exists.
	Get(ctx context.Context, hashedID string) ([]string, bool, error)
}

type GormStore struct {
	pool *db.Pool
}

func NewStore(pool *db.Pool) *GormStore {
	return &GormStore{pool: pool}
}

// Put replaces the stored set.
func (s *GormStore) Put(ctx context.Context, hashedID string, interests []string) error {
	row := UserInterests{
		HashedUserID: hashedID,
		Interests:    pq.StringArray(interests),
		UpdatedAt:    time.Now().UTC(),
	}
	err := s.pool.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hashed_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"interests", "updated_at"}),
		}).Create(&row).Error
	})
	return db.Wrap(err)
}

func (s *GormStore) Get(ctx context.Context, hashedID string) ([]string, bool, error) {
	var row UserInterests
	err := s.pool.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Where("hashed_user_id = ?", hashedID).Take(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, db.Wrap(err)
	}
	return []string(row.Interests), true, nil
}

func Migrate(tx *gorm.DB) error {
	return db.Migrate(tx, &UserInterests{})
}
