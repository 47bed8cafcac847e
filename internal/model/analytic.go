package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Analytic holds per-file analysis results for a submission, keyed by
// filename. At most one analytic exists per submission.
type Analytic struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"submission_id"`
	Data         datatypes.JSONMap `gorm:"type:jsonb" json:"data"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
