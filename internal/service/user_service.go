package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/dto"
	"github.com/tvqhuy/Classboard/internal/model"
	"github.com/tvqhuy/Classboard/internal/repository"
	"gorm.io/gorm"
)

type UserService interface {
	Me(caller *model.User) (*dto.UserResponse, error)
	GetByID(id uuid.UUID) (*dto.UserResponse, error)
	ListStudents(caller *model.User) ([]dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	policy   Policy
}

func NewUserService(userRepo repository.UserRepository, policy Policy) UserService {
	return &userService{userRepo: userRepo, policy: policy}
}

func toUserResponse(user *model.User) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := copier.Copy(&resp, user); err != nil {
		return nil, apperr.Internal("failed to shape user response: %w", err)
	}
	return &resp, nil
}

func (s *userService) Me(caller *model.User) (*dto.UserResponse, error) {
	return toUserResponse(caller)
}

func (s *userService) GetByID(id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to fetch user: %w", err)
	}
	return toUserResponse(user)
}

func (s *userService) ListStudents(caller *model.User) ([]dto.UserResponse, error) {
	if err := s.policy.Authorize(caller, ActionListStudents, Resource{}); err != nil {
		return nil, err
	}
	students, err := s.userRepo.FindStudents()
	if err != nil {
		return nil, apperr.Internal("failed to list students: %w", err)
	}
	resps := make([]dto.UserResponse, 0, len(students))
	for i := range students {
		resp, err := toUserResponse(&students[i])
		if err != nil {
			return nil, err
		}
		resps = append(resps, *resp)
	}
	return resps, nil
}
