package service

import (
	"errors"
	"unicode"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/dto"
	"github.com/tvqhuy/Classboard/internal/model"
	"github.com/tvqhuy/Classboard/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Signup(req dto.SignupRequest) (*dto.UserResponse, error)
	Login(req dto.TokenRequest) (*dto.TokenResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenService) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func validName(name string) bool {
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func (s *authService) Signup(req dto.SignupRequest) (*dto.UserResponse, error) {
	if !validName(req.Name) {
		return nil, apperr.Validation("name must contain only letters")
	}
	if !model.ValidRole(req.Role) {
		return nil, apperr.Validation("invalid role %q", req.Role)
	}

	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, apperr.Validation("username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("failed to check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password: %w", err)
	}

	user := model.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Username: req.Username,
		Role:     req.Role,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(&user); err != nil {
		return nil, apperr.Internal("failed to create user: %w", err)
	}
	log.Info().Str("username", user.Username).Str("role", user.Role).Msg("User signed up")

	var resp dto.UserResponse
	if err := copier.Copy(&resp, &user); err != nil {
		return nil, apperr.Internal("failed to shape user response: %w", err)
	}
	return &resp, nil
}

func (s *authService) Login(req dto.TokenRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, apperr.Unauthenticated("incorrect username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthenticated("incorrect username or password")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperr.Internal("failed to issue token: %w", err)
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}
