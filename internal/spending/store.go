package spending

import (
	"context"

	"github.com/EmpoweredVote/civic-data-backend/internal/db"
	"gorm.io/gorm"
)

type Store interface {
	Breakdown(ctx context.Context) (Breakdown, error)
	EconomicIndicators(ctx context.Context) ([]EconomicIndicator, error)
	DebtHistory(ctx context.Context) (DebtHistory, error)
}

type GormStore struct {
	pool *db.Pool
}

func NewStore(pool *db.Pool) *GormStore {
	return &GormStore{pool: pool}
}

// Breakdown reads agencies with a positive share and all budget functions,
// largest share first, on one connection.
func (s *GormStore) Breakdown(ctx context.Context) (Breakdown, error) {
	out := Breakdown{Agencies: []AgencySpending{}, BudgetFunctions: []BudgetFunction{}}
	err := s.pool.WithConn(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("percent_budget > 0").
			Order("percent_budget DESC").
			Find(&out.Agencies).Error; err != nil {
			return err
		}
		return tx.Order("percent_budget DESC").Find(&out.BudgetFunctions).Error
	})
	if err != nil {
		return Breakdown{}, db.Wrap(err)
	}
	return out, nil
}

func (s *GormStore) EconomicIndicators(ctx context.Context) ([]EconomicIndicator, error) {
	rows := []EconomicIndicator{}
	err := s.pool.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Order("year ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, db.Wrap(err)
	}
	return rows, nil
}

func (s *GormStore) DebtHistory(ctx context.Context) (DebtHistory, error) {
	out := DebtHistory{FederalDebt: []FederalDebt{}, TreasuryStatements: []TreasuryStatement{}}
	err := s.pool.WithConn(ctx, func(tx *gorm.DB) error {
		if err := tx.Order("year ASC").Find(&out.FederalDebt).Error; err != nil {
			return err
		}
		return tx.Order("record_date ASC").Find(&out.TreasuryStatements).Error
	})
	if err != nil {
		return DebtHistory{}, db.Wrap(err)
	}
	return out, nil
}

func Migrate(tx *gorm.DB) error {
	return db.Migrate(tx,
		&AgencySpending{},
		&BudgetFunction{},
		&FederalDebt{},
		&TreasuryStatement{},
		&EconomicIndicator{},
	)
}
