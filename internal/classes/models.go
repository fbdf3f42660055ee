package classes

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrClassNotFound = errors.New("class not found")

// Class is a taught section of a subject in a given term.
type Class struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Code      string     `json:"code" gorm:"uniqueIndex;not null;size:50"`
	Name      string     `json:"name" gorm:"not null;size:200"`
	Subject   string     `json:"subject" gorm:"not null;size:100"`
	Term      string     `json:"term" gorm:"not null;size:50;index"`
	TeacherID *uuid.UUID `json:"teacher_id,omitempty" gorm:"type:uuid;index"`
	Room      string     `json:"room" gorm:"size:50"`
	Capacity  int        `json:"capacity" gorm:"default:30"`
	Active    bool       `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (c *Class) ToResponse() ClassResponse {
	resp := ClassResponse{
		ID:        c.ID.String(),
		Code:      c.Code,
		Name:      c.Name,
		Subject:   c.Subject,
		Term:      c.Term,
		Room:      c.Room,
		Capacity:  c.Capacity,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.TeacherID != nil {
		id := c.TeacherID.String()
		resp.TeacherID = &id
	}
	return resp
}

func (Class) TableName() string { return "classes" }
