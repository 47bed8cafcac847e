package repository

import (
	"github.com/google/uuid"
	"github.com/tvqhuy/Classboard/internal/model"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	FindByID(id uuid.UUID) (*model.Submission, error)
	FindByIDWithFiles(id uuid.UUID) (*model.Submission, error)
	FindByAssignment(assignmentID uuid.UUID) ([]model.Submission, error)
	FindByAssignmentAndStudent(assignmentID, studentID uuid.UUID) ([]model.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) FindByID(id uuid.UUID) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.First(&submission, "id = ?", id).Error
	return &submission, err
}

// FindByIDWithFiles preloads files in attachment order plus the analytic,
// if any.
func (r *submissionRepository) FindByIDWithFiles(id uuid.UUID) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.Preload("Files", func(db *gorm.DB) *gorm.DB {
		return db.Order("files.created_at ASC")
	}).Preload("Analytic").First(&submission, "id = ?", id).Error
	return &submission, err
}

func (r *submissionRepository) FindByAssignment(assignmentID uuid.UUID) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.Preload("Files").
		Where("assignment_id = ?", assignmentID).
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) FindByAssignmentAndStudent(assignmentID, studentID uuid.UUID) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.Preload("Files").
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}
