package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/dto"
	"github.com/tvqhuy/Classboard/internal/model"
	"github.com/tvqhuy/Classboard/internal/repository"
	"gorm.io/gorm"
)

type AssignmentService interface {
	Create(caller *model.User, req dto.AssignmentCreateRequest) (*model.Assignment, error)
	List(caller *model.User) ([]model.Assignment, error)
	Get(caller *model.User, id uuid.UUID) (*model.Assignment, error)
	Update(caller *model.User, id uuid.UUID, req dto.AssignmentUpdateRequest) (*model.Assignment, error)
	ListSubmissions(caller *model.User, assignmentID uuid.UUID) ([]model.Submission, error)
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	submissionRepo repository.SubmissionRepository
	userRepo       repository.UserRepository
	policy         Policy
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	policy Policy,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		userRepo:       userRepo,
		policy:         policy,
	}
}

// validateStudentIDs ensures every id references an existing user with the
// student role.
func (s *assignmentService) validateStudentIDs(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := s.userRepo.CountStudentsByIDs(ids)
	if err != nil {
		return apperr.Internal("failed to validate student IDs: %w", err)
	}
	if count != int64(len(ids)) {
		return apperr.Validation("some student IDs are invalid or not students")
	}
	return nil
}

func studentIDStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func (s *assignmentService) Create(caller *model.User, req dto.AssignmentCreateRequest) (*model.Assignment, error) {
	if err := s.policy.Authorize(caller, ActionCreateAssignment, Resource{}); err != nil {
		return nil, err
	}
	if err := s.validateStudentIDs(req.StudentIDs); err != nil {
		return nil, err
	}

	assignment := model.Assignment{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		TeacherID:   caller.ID,
		StudentIDs:  studentIDStrings(req.StudentIDs),
	}
	if err := s.assignmentRepo.Create(&assignment); err != nil {
		return nil, apperr.Internal("failed to create assignment: %w", err)
	}
	log.Info().Str("assignmentID", assignment.ID.String()).Str("teacherID", caller.ID.String()).Msg("Assignment created")
	return &assignment, nil
}

func (s *assignmentService) List(caller *model.User) ([]model.Assignment, error) {
	var (
		assignments []model.Assignment
		err         error
	)
	if caller.Role == model.RoleTeacher {
		assignments, err = s.assignmentRepo.FindByTeacher(caller.ID)
	} else {
		assignments, err = s.assignmentRepo.FindByStudent(caller.ID)
	}
	if err != nil {
		return nil, apperr.Internal("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (s *assignmentService) Get(caller *model.User, id uuid.UUID) (*model.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByIDWithSubmissions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("assignment not found")
		}
		return nil, apperr.Internal("failed to fetch assignment: %w", err)
	}
	if err := s.policy.Authorize(caller, ActionViewAssignment, Resource{Assignment: assignment}); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) Update(caller *model.User, id uuid.UUID, req dto.AssignmentUpdateRequest) (*model.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("assignment not found")
		}
		return nil, apperr.Internal("failed to fetch assignment: %w", err)
	}
	if err := s.policy.Authorize(caller, ActionUpdateAssignment, Resource{Assignment: assignment}); err != nil {
		return nil, err
	}

	if req.StudentIDs != nil {
		if err := s.validateStudentIDs(*req.StudentIDs); err != nil {
			return nil, err
		}
		assignment.StudentIDs = studentIDStrings(*req.StudentIDs)
	}
	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = *req.Description
	}
	if req.DueDate != nil {
		assignment.DueDate = req.DueDate
	}

	if err := s.assignmentRepo.Save(assignment); err != nil {
		return nil, apperr.Internal("failed to update assignment: %w", err)
	}
	return assignment, nil
}

// ListSubmissions returns all submissions to the owning teacher and only
// the caller's own submissions to a member student.
func (s *assignmentService) ListSubmissions(caller *model.User, assignmentID uuid.UUID) ([]model.Submission, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("assignment not found")
		}
		return nil, apperr.Internal("failed to fetch assignment: %w", err)
	}
	if err := s.policy.Authorize(caller, ActionListSubmissions, Resource{Assignment: assignment}); err != nil {
		return nil, err
	}

	var submissions []model.Submission
	if caller.Role == model.RoleStudent {
		submissions, err = s.submissionRepo.FindByAssignmentAndStudent(assignmentID, caller.ID)
	} else {
		submissions, err = s.submissionRepo.FindByAssignment(assignmentID)
	}
	if err != nil {
		return nil, apperr.Internal("failed to list submissions: %w", err)
	}
	return submissions, nil
}
