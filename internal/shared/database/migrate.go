package database

import (
	"gradely/internal/classes"
	"gradely/internal/grades"
	"gradely/internal/students"
	"gradely/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&users.Role{},
		&users.Permission{},
		&users.UserRole{},
		&users.RolePermission{},
		&students.Student{},
		&classes.Class{},
		&grades.Grade{},
	)
}
