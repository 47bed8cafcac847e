package service

import (
	"errors"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/model"
	"github.com/tvqhuy/Classboard/internal/repository"
	"github.com/tvqhuy/Classboard/internal/storage"
	"gorm.io/gorm"
)

type SubmissionService interface {
	Submit(caller *model.User, assignmentID uuid.UUID, comment string, files []*multipart.FileHeader) (*model.Submission, error)
}

type submissionService struct {
	assignmentRepo repository.AssignmentRepository
	store          *storage.LocalStore
	policy         Policy
	tx             repository.TxRunner
}

func NewSubmissionService(
	assignmentRepo repository.AssignmentRepository,
	store *storage.LocalStore,
	policy Policy,
	tx repository.TxRunner,
) SubmissionService {
	return &submissionService{
		assignmentRepo: assignmentRepo,
		store:          store,
		policy:         policy,
		tx:             tx,
	}
}

type bufferedFile struct {
	tempPath    string
	filename    string
	contentType string
}

// Submit buffers every upload into a scratch directory, then inserts the
// submission and its file rows inside one transaction, promoting each
// buffered file into permanent storage as its row is written. Any failure
// rolls the whole transaction back; no partial rows survive.
func (s *submissionService) Submit(caller *model.User, assignmentID uuid.UUID, comment string, files []*multipart.FileHeader) (*model.Submission, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("assignment not found")
		}
		return nil, apperr.Internal("failed to fetch assignment: %w", err)
	}
	if err := s.policy.Authorize(caller, ActionSubmit, Resource{Assignment: assignment}); err != nil {
		return nil, err
	}

	tempDir, err := storage.NewTempDir()
	if err != nil {
		return nil, apperr.Internal("failed to prepare scratch storage: %w", err)
	}
	defer tempDir.Close()

	buffered := make([]bufferedFile, 0, len(files))
	for _, fh := range files {
		if err := storage.ValidateFilename(fh.Filename); err != nil {
			return nil, apperr.Validation("%s", err.Error())
		}
		src, err := fh.Open()
		if err != nil {
			return nil, apperr.Internal("failed to read upload %s: %w", fh.Filename, err)
		}
		tempPath, err := tempDir.Save(fh.Filename, src)
		src.Close()
		if err != nil {
			return nil, apperr.Internal("error saving file: %w", err)
		}
		buffered = append(buffered, bufferedFile{
			tempPath:    tempPath,
			filename:    fh.Filename,
			contentType: fh.Header.Get("Content-Type"),
		})
	}

	submission := model.Submission{
		ID:           uuid.New(),
		Comment:      comment,
		AssignmentID: assignment.ID,
		StudentID:    caller.ID,
	}

	var promoted []string
	err = s.tx.Transaction(func(tx repository.TxCreator) error {
		if err := tx.Create(&submission); err != nil {
			return err
		}
		for _, bf := range buffered {
			src, err := tempDir.Open(bf.tempPath)
			if err != nil {
				return err
			}
			permPath, size, err := s.store.Save(submission.ID, bf.filename, src)
			src.Close()
			if err != nil {
				return err
			}
			promoted = append(promoted, permPath)

			file := model.File{
				ID:           uuid.New(),
				Filename:     bf.filename,
				Filepath:     permPath,
				Size:         size,
				ContentType:  bf.contentType,
				SubmissionID: submission.ID,
			}
			if err := tx.Create(&file); err != nil {
				return err
			}
			submission.Files = append(submission.Files, file)
		}
		return nil
	})
	if err != nil {
		for _, path := range promoted {
			if rmErr := s.store.Remove(path); rmErr != nil {
				log.Warn().Err(rmErr).Str("path", path).Msg("Failed to remove promoted file after rollback")
			}
		}
		log.Error().Err(err).Str("assignmentID", assignmentID.String()).Msg("Submission intake failed, transaction rolled back")
		return nil, apperr.Internal("error creating submission: %w", err)
	}

	log.Info().
		Str("submissionID", submission.ID.String()).
		Str("studentID", caller.ID.String()).
		Int("fileCount", len(submission.Files)).
		Msg("Submission created")
	return &submission, nil
}
