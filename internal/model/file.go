package model

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Filename     string    `gorm:"not null" json:"filename"`
	Filepath     string    `gorm:"not null" json:"-"` // server-local path, never client-controlled
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index" json:"submission_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
