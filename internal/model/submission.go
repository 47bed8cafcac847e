package model

import (
	"time"

	"github.com/google/uuid"
)

type Submission struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Comment      string    `json:"comment,omitempty"`
	AssignmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"assignment_id"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Files        []File    `gorm:"foreignKey:SubmissionID" json:"files,omitempty"`
	Analytic     *Analytic `gorm:"foreignKey:SubmissionID" json:"analytic,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
