package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/user"
)

type service struct {
	userRepo user.Repository
	tokens   *TokenService
	log      *zap.Logger
}

// NewService creates a new auth service.
func NewService(userRepo user.Repository, tokens *TokenService, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{userRepo: userRepo, tokens: tokens, log: log}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	u, err := s.userRepo.GetUserByUsername(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		s.log.Info("login failed", zap.String("username", username), zap.String("reason", "unknown user"))
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(u.PasswordHash, req.Password) {
		s.log.Info("login failed", zap.String("username", username), zap.String("reason", "bad password"))
		return nil, apperr.Unauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  u.Username,
		Role:      u.Role,
		ShopID:    u.ShopID,
	}, nil
}
