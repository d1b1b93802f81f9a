package db

import "gorm.io/gorm"

// Schema is the Postgres schema every civic table lives in.
const Schema = "civic"

func EnsureSchema(d *gorm.DB, schema string) error {
	return d.Exec(`CREATE SCHEMA IF NOT EXISTS "` + schema + `"`).Error
}

// Migrate ensures the schema exists and auto-migrates the given models.
func Migrate(d *gorm.DB, models ...interface{}) error {
	if err := EnsureSchema(d, Schema); err != nil {
		return err
	}
	return d.AutoMigrate(models...)
}
