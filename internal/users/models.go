package users

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")
)

// User is the credential record plus the denormalized profile fields
// surfaced in login responses. The password column stores a bcrypt hash,
// never plaintext.
type User struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Username  string     `json:"username" gorm:"uniqueIndex;not null;size:100"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	FullName  string     `json:"full_name" gorm:"not null;size:200"`
	Phone     string     `json:"phone" gorm:"size:30"`
	Password  string     `json:"-" gorm:"not null"` // hide in json
	Active    bool       `json:"active" gorm:"not null;default:true"`
	StudentID *uuid.UUID `json:"student_id,omitempty" gorm:"type:uuid"`
	TeacherID *uuid.UUID `json:"teacher_id,omitempty" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// Role is the persisted role entity. See role.go for the enumerated
// RoleName values enforced at request time.
type Role struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null;size:50"`
	Description string    `json:"description" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type Permission struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Code        string    `json:"code" gorm:"uniqueIndex;not null;size:100"`
	Description string    `json:"description" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// UserRole links a user to a role. AssignedAt drives role ordering: the
// earliest assignment is the user's primary role.
type UserRole struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_user_role_unique"`
	RoleID     uuid.UUID `json:"role_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_user_role_unique"`
	AssignedAt time.Time `json:"assigned_at" gorm:"autoCreateTime"`
}

// RolePermission links a role to a permission. Only active links count
// toward a user's effective permission set.
type RolePermission struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	RoleID       uuid.UUID `json:"role_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_role_permission_unique"`
	PermissionID uuid.UUID `json:"permission_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_role_permission_unique"`
	Active       bool      `json:"active" gorm:"not null;default:true"`
	AssignedAt   time.Time `json:"assigned_at" gorm:"autoCreateTime"`
}

func (User) TableName() string           { return "users" }
func (Role) TableName() string           { return "roles" }
func (Permission) TableName() string     { return "permissions" }
func (UserRole) TableName() string       { return "user_roles" }
func (RolePermission) TableName() string { return "role_permissions" }
