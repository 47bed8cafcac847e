package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/model"
	"github.com/tvqhuy/Classboard/internal/repository"
	"github.com/tvqhuy/Classboard/internal/storage"
	"gorm.io/gorm"
)

type AnalyticService interface {
	Create(caller *model.User, submissionID uuid.UUID) (*model.Submission, error)
	Request(ctx context.Context, caller *model.User, submissionID uuid.UUID, prompt string) (*model.Analytic, error)
}

type analyticService struct {
	submissionRepo repository.SubmissionRepository
	assignmentRepo repository.AssignmentRepository
	analyticRepo   repository.AnalyticRepository
	llm            AnalysisLLMService
	store          *storage.LocalStore
	policy         Policy
}

func NewAnalyticService(
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	analyticRepo repository.AnalyticRepository,
	llm AnalysisLLMService,
	store *storage.LocalStore,
	policy Policy,
) AnalyticService {
	return &analyticService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		analyticRepo:   analyticRepo,
		llm:            llm,
		store:          store,
		policy:         policy,
	}
}

// loadAuthorized fetches the submission with files and checks the caller
// owns its assignment.
func (s *analyticService) loadAuthorized(caller *model.User, submissionID uuid.UUID) (*model.Submission, error) {
	submission, err := s.submissionRepo.FindByIDWithFiles(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("submission not found")
		}
		return nil, apperr.Internal("failed to fetch submission: %w", err)
	}
	assignment, err := s.assignmentRepo.FindByID(submission.AssignmentID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch assignment: %w", err)
	}
	if err := s.policy.Authorize(caller, ActionManageAnalytic, Resource{Assignment: assignment, Submission: submission}); err != nil {
		return nil, err
	}
	return submission, nil
}

// Create attaches an empty analytic to the submission. A submission that
// already has one is a conflict; the existing record is left untouched.
func (s *analyticService) Create(caller *model.User, submissionID uuid.UUID) (*model.Submission, error) {
	submission, err := s.loadAuthorized(caller, submissionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.analyticRepo.FindBySubmission(submission.ID); err == nil {
		return nil, apperr.Conflict("submission already has an analytic")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("failed to check existing analytic: %w", err)
	}

	analytic := model.Analytic{
		ID:           uuid.New(),
		SubmissionID: submission.ID,
		Data:         map[string]interface{}{},
	}
	if err := s.analyticRepo.Create(&analytic); err != nil {
		return nil, apperr.Internal("failed to create analytic: %w", err)
	}
	submission.Analytic = &analytic

	log.Info().Str("submissionID", submission.ID.String()).Msg("Analytic created")
	return submission, nil
}

// Request runs the collaborator over every attached file in order. Any
// failure aborts the whole request; results gathered so far are discarded
// and the stored data is left unchanged.
func (s *analyticService) Request(ctx context.Context, caller *model.User, submissionID uuid.UUID, prompt string) (*model.Analytic, error) {
	submission, err := s.loadAuthorized(caller, submissionID)
	if err != nil {
		return nil, err
	}

	analytic, err := s.analyticRepo.FindBySubmission(submission.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("submission has no analytic")
		}
		return nil, apperr.Internal("failed to fetch analytic: %w", err)
	}
	if len(submission.Files) == 0 {
		return nil, apperr.Validation("submission has no files to analyze")
	}

	results := map[string]interface{}{}
	for _, file := range submission.Files {
		content, err := s.store.ReadFile(file.Filepath)
		if err != nil {
			return nil, apperr.Internal("failed to read file %s: %w", file.Filename, err)
		}
		analysis, err := s.llm.AnalyzeFile(ctx, prompt, string(content))
		if err != nil {
			log.Error().Err(err).Str("filename", file.Filename).Msg("Collaborator failed, aborting analysis request")
			return nil, apperr.Upstream("error analyzing file %s: %w", file.Filename, err)
		}
		results[file.Filename] = map[string]interface{}{"analysis": analysis}
	}

	analytic.Data = results
	if err := s.analyticRepo.Save(analytic); err != nil {
		return nil, apperr.Internal("failed to persist analytic: %w", err)
	}

	log.Info().Str("submissionID", submission.ID.String()).Int("fileCount", len(submission.Files)).Msg("Analysis request completed")
	return analytic, nil
}
