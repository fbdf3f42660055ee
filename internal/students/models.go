package students

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrStudentNotFound = errors.New("student not found")

// Student is the academic record entity a user account may link to via
// users.User.StudentID.
type Student struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EnrollmentNumber string    `json:"enrollment_number" gorm:"uniqueIndex;not null;size:50"`
	FullName         string    `json:"full_name" gorm:"not null;size:200"`
	Email            string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone            string    `json:"phone" gorm:"size:30"`
	EnrolledAt       time.Time `json:"enrolled_at"`
	Active           bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (s *Student) ToResponse() StudentResponse {
	return StudentResponse{
		ID:               s.ID.String(),
		EnrollmentNumber: s.EnrollmentNumber,
		FullName:         s.FullName,
		Email:            s.Email,
		Phone:            s.Phone,
		EnrolledAt:       s.EnrolledAt,
		Active:           s.Active,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (Student) TableName() string { return "students" }
