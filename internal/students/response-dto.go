package students

import "time"

type StudentResponse struct {
	ID               string    `json:"id"`
	EnrollmentNumber string    `json:"enrollment_number"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	EnrolledAt       time.Time `json:"enrolled_at"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type PaginatedStudents struct {
	Students   []StudentResponse `json:"students"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
