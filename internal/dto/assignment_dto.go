package dto

import (
	"time"

	"github.com/google/uuid"
)

type AssignmentCreateRequest struct {
	Title       string      `json:"title" binding:"required,min=1,max=50"`
	Description string      `json:"description"`
	DueDate     *time.Time  `json:"due_date"`
	StudentIDs  []uuid.UUID `json:"student_ids"`
}

type AssignmentUpdateRequest struct {
	Title       *string      `json:"title" binding:"omitempty,min=1,max=50"`
	Description *string      `json:"description"`
	DueDate     *time.Time   `json:"due_date"`
	StudentIDs  *[]uuid.UUID `json:"student_ids"`
}
