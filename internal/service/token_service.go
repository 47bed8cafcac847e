package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tvqhuy/Classboard/config"
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/model"
	"github.com/tvqhuy/Classboard/internal/repository"
)

// TokenService issues and validates signed, time-limited bearer tokens
// embedding the user id and role.
type TokenService interface {
	Generate(user *model.User) (string, error)
	Authenticate(token string) (*model.User, error)
}

type tokenService struct {
	userRepo repository.UserRepository
	secret   []byte
	expiry   time.Duration
}

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func NewTokenService(cfg *config.Config, userRepo repository.UserRepository) TokenService {
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET is not set. Issued tokens will not be secure.")
	}
	return &tokenService{
		userRepo: userRepo,
		secret:   []byte(cfg.JWT.Secret),
		expiry:   time.Duration(cfg.JWT.ExpiryMinutes) * time.Minute,
	}
}

func (s *tokenService) Generate(user *model.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Authenticate validates signature and expiry, then confirms the subject
// still exists. Every failure collapses to the same denied outcome; the
// caller learns nothing about which check failed.
func (s *tokenService) Authenticate(tokenString string) (*model.User, error) {
	denied := apperr.Unauthenticated("invalid authentication credentials")

	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, denied
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, denied
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, denied
	}
	return user, nil
}
