package grades

import "time"

type GradeResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	ClassID   string    `json:"class_id"`
	Term      string    `json:"term"`
	Score     float64   `json:"score"`
	Letter    string    `json:"letter"`
	Comment   string    `json:"comment"`
	GradedBy  string    `json:"graded_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaginatedGrades struct {
	Grades     []GradeResponse `json:"grades"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// StudentTermSummary aggregates a student's results for a term.
type StudentTermSummary struct {
	StudentID    string          `json:"student_id"`
	Term         string          `json:"term"`
	Grades       []GradeResponse `json:"grades"`
	AverageScore float64         `json:"average_score"`
}
