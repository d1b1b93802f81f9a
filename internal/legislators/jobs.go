package legislators

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/EmpoweredVote/civic-data-backend/internal/config"
	"github.com/EmpoweredVote/civic-data-backend/internal/ingest"
	"gorm.io/gorm"
)

// RosterJob loads legislators-current.csv into the senator and
// representative tables.
func RosterJob(cfg config.LegislatorsSource) ingest.JobFunc {
	return func(ctx context.Context, env ingest.Env) (int, error) {
		f, err := os.Open(cfg.RosterCSV)
		if err != nil {
			return 0, fmt.Errorf("open roster: %w", err)
		}
		defer f.Close()

		roster, err := ParseRoster(f)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", cfg.RosterCSV, err)
		}

		var sens, reps int64
		err = env.Pool.WithConn(ctx, func(tx *gorm.DB) error {
			var err error
			sens, reps, err = ImportRoster(tx, roster)
			return err
		})
		if err != nil {
			return 0, err
		}
		log.Printf("[ingest:roster] inserted %d senators, %d representatives (%d usable rows, %d skipped)",
			sens, reps, len(roster.Senators)+len(roster.Representatives), roster.Skipped)
		return int(sens + reps), nil
	}
}

// NominateJob applies Voteview first-dimension scores to stored legislators.
func NominateJob(cfg config.LegislatorsSource) ingest.JobFunc {
	return func(ctx context.Context, env ingest.Env) (int, error) {
		f, err := os.Open(cfg.NominateCSV)
		if err != nil {
			return 0, fmt.Errorf("open member scores: %w", err)
		}
		defer f.Close()

		scores, err := ParseMemberScores(f)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", cfg.NominateCSV, err)
		}

		var updated, unmatched int
		err = env.Pool.WithConn(ctx, func(tx *gorm.DB) error {
			var err error
			updated, unmatched, err = ApplyScores(tx, scores)
			return err
		})
		if err != nil {
			return 0, err
		}
		if unmatched > 0 {
			log.Printf("[ingest:nominate] %d of %d members matched no stored legislator", unmatched, len(scores))
		}
		return updated, nil
	}
}
