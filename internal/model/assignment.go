package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Assignment struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description,omitempty"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	TeacherID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"teacher_id"`
	StudentIDs  pq.StringArray `gorm:"type:text[]" json:"student_ids"`
	Submissions []Submission   `gorm:"foreignKey:AssignmentID" json:"submissions,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// HasStudent reports whether the user is assigned to this assignment.
func (a *Assignment) HasStudent(id uuid.UUID) bool {
	s := id.String()
	for _, sid := range a.StudentIDs {
		if sid == s {
			return true
		}
	}
	return false
}
