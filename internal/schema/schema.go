// Package schema migrates every table in the civic schema.
package schema

import (
	"fmt"
	"log"

	"github.com/EmpoweredVote/civic-data-backend/internal/census"
	"github.com/EmpoweredVote/civic-data-backend/internal/crime"
	"github.com/EmpoweredVote/civic-data-backend/internal/db"
	"github.com/EmpoweredVote/civic-data-backend/internal/health"
	"github.com/EmpoweredVote/civic-data-backend/internal/interests"
	"github.com/EmpoweredVote/civic-data-backend/internal/legislation"
	"github.com/EmpoweredVote/civic-data-backend/internal/legislators"
	"github.com/EmpoweredVote/civic-data-backend/internal/spending"
	"gorm.io/gorm"
)

var migrations = []struct {
	name string
	fn   func(*gorm.DB) error
}{
	{"legislators", legislators.Migrate},
	{"crime", crime.Migrate},
	{"census", census.Migrate},
	{"health", health.Migrate},
	{"spending", spending.Migrate},
	{"legislation", legislation.Migrate},
	{"interests", interests.Migrate},
}

// Migrate creates or updates all tables. Safe to run on every start.
func Migrate(pool *db.Pool) error {
	tx := pool.Gorm()
	for _, m := range migrations {
		if err := m.fn(tx); err != nil {
			return fmt.Errorf("migrate %s: %w", m.name, err)
		}
	}
	log.Printf("Schema %s migrated", db.Schema)
	return nil
}
