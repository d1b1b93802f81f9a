package ingest

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Upsert writes rows in batches, replacing updateCols when a row with the
// same conflictCols already exists. rows must be a pointer to a slice of models.
func Upsert(tx *gorm.DB, source string, rows interface{}, n int, conflictCols, updateCols []string) error {
	if n == 0 {
		LogUpsert(source, 0, 0)
		return nil
	}
	cols := make([]clause.Column, len(conflictCols))
	for i, c := range conflictCols {
		cols[i] = clause.Column{Name: c}
	}

	start := time.Now()
	err := tx.Clauses(clause.OnConflict{
		Columns:   cols,
		DoUpdates: clause.AssignmentColumns(updateCols),
	}).CreateInBatches(rows, 200).Error
	if err != nil {
		LogError(source, "upsert", err)
		return err
	}
	LogUpsert(source, n, time.Since(start))
	return nil
}
