package grades

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGradeNotFound  = errors.New("grade not found")
	ErrDuplicateGrade = errors.New("a grade already exists for this student, class and term")
)

// Grade is a single graded result for a student in a class during a term.
// The (student_id, class_id, term) combination is unique.
type Grade struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	StudentID uuid.UUID `json:"student_id" gorm:"type:uuid;not null;index"`
	ClassID   uuid.UUID `json:"class_id" gorm:"type:uuid;not null;index"`
	Term      string    `json:"term" gorm:"not null;size:50"`
	Score     float64   `json:"score" gorm:"not null"`
	Letter    string    `json:"letter" gorm:"size:2"`
	Comment   string    `json:"comment" gorm:"size:500"`
	GradedBy  uuid.UUID `json:"graded_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (g *Grade) ToResponse() GradeResponse {
	return GradeResponse{
		ID:        g.ID.String(),
		StudentID: g.StudentID.String(),
		ClassID:   g.ClassID.String(),
		Term:      g.Term,
		Score:     g.Score,
		Letter:    g.Letter,
		Comment:   g.Comment,
		GradedBy:  g.GradedBy.String(),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func (Grade) TableName() string { return "grades" }

// LetterFor maps a numeric score to its letter grade.
func LetterFor(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
