package classes

import "time"

type ClassResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Term      string    `json:"term"`
	TeacherID *string   `json:"teacher_id,omitempty"`
	Room      string    `json:"room"`
	Capacity  int       `json:"capacity"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaginatedClasses struct {
	Classes    []ClassResponse `json:"classes"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
