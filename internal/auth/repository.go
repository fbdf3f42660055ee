package auth

import (
	"context"
	"errors"

	"gradely/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes the credential and role/permission lookups the
// session issuer needs. These are the only blocking calls in the auth
// subsystem and are bounded by the caller's request context.
type Repository interface {
	GetUserByUsername(ctx context.Context, username string) (*users.User, error)
	GetUserByID(ctx context.Context, id string) (*users.User, error)
	RolesOf(ctx context.Context, userID uuid.UUID) ([]string, error)
	PermissionsOf(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetUserByUsername(ctx context.Context, username string) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, users.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, users.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RolesOf returns role names in assignment order; the first entry is the
// user's primary role.
func (r *repository) RolesOf(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Table("roles").
		Select("roles.name").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("user_roles.assigned_at ASC").
		Pluck("roles.name", &names).Error
	return names, err
}

// PermissionsOf returns the deduplicated permission codes from all active
// role-permission links across all of the user's roles.
func (r *repository) PermissionsOf(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).Table("permissions").
		Distinct("permissions.code").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
		Where("user_roles.user_id = ? AND role_permissions.active = ?", userID, true).
		Order("permissions.code ASC").
		Pluck("permissions.code", &codes).Error
	return codes, err
}
