package dto

import "github.com/google/uuid"

type AnalyticCreateRequest struct {
	SubmissionID uuid.UUID `json:"submission_id" binding:"required"`
}

type AnalysisRequest struct {
	SubmissionID uuid.UUID `json:"submission_id" binding:"required"`
	Prompt       string    `json:"prompt" binding:"required"`
}
