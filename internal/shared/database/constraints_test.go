package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestMigrateConstraintsInstallsGradeUniqueness(t *testing.T) {
	db, mock := newMockGorm(t)

	mock.ExpectExec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_grade_per_class_term`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_user_roles_user_assigned`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, MigrateConstraints(db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateConstraintsStopsOnFirstError(t *testing.T) {
	db, mock := newMockGorm(t)

	mock.ExpectExec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_grade_per_class_term`).
		WillReturnError(gorm.ErrInvalidDB)

	require.Error(t, MigrateConstraints(db))
	require.NoError(t, mock.ExpectationsWereMet())
}
