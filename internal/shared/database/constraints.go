package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds schema rules AutoMigrate does not cover. It
// runs on every startup, so each statement must be idempotent; Postgres
// has no IF NOT EXISTS form for ADD CONSTRAINT, hence unique indexes.
func MigrateConstraints(db *gorm.DB) error {
	// One grade entry per student per class per term
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_grade_per_class_term
		ON grades (student_id, class_id, term);
	`).Error
	if err != nil {
		return err
	}

	// Role resolution orders by assignment time per user
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_user_roles_user_assigned
		ON user_roles (user_id, assigned_at);
	`).Error
}
