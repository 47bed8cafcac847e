package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/model"
	"github.com/tvqhuy/Classboard/internal/repository"
	"gorm.io/gorm"
)

type FileService interface {
	Get(caller *model.User, id uuid.UUID) (*model.File, error)
}

type fileService struct {
	fileRepo       repository.FileRepository
	submissionRepo repository.SubmissionRepository
	assignmentRepo repository.AssignmentRepository
	policy         Policy
}

func NewFileService(
	fileRepo repository.FileRepository,
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	policy Policy,
) FileService {
	return &fileService{
		fileRepo:       fileRepo,
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		policy:         policy,
	}
}

// Get returns the file record after confirming the caller is either the
// owning teacher or the owning student of the parent submission.
func (s *fileService) Get(caller *model.User, id uuid.UUID) (*model.File, error) {
	file, err := s.fileRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("file not found")
		}
		return nil, apperr.Internal("failed to fetch file: %w", err)
	}

	submission, err := s.submissionRepo.FindByID(file.SubmissionID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch submission: %w", err)
	}
	assignment, err := s.assignmentRepo.FindByID(submission.AssignmentID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch assignment: %w", err)
	}
	if err := s.policy.Authorize(caller, ActionViewFile, Resource{Assignment: assignment, Submission: submission}); err != nil {
		return nil, err
	}
	return file, nil
}
