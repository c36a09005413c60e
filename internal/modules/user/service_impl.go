package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

type service struct {
	repo Repository
	log  *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, log: log}
}

// HashPassword hashes a plain password with bcrypt's default cost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *service) CreateStaff(ctx context.Context, p tenant.Principal, req CreateStaffRequest) (*User, error) {
	if !p.IsAdmin() {
		return nil, apperr.Forbidden("only admins can create staff")
	}
	username := strings.TrimSpace(req.Username)
	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("username already exists")
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:           uuid.New(),
		ShopID:       uuid.NullUUID{UUID: p.ShopID, Valid: true},
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hashed,
		Role:         tenant.RoleStaff,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("staff created",
		zap.String("shop_id", p.ShopID.String()),
		zap.String("username", u.Username),
		zap.String("created_by", p.Username))
	return u, nil
}

func (s *service) ListStaff(ctx context.Context, p tenant.Principal) ([]*User, error) {
	if !p.IsAdmin() {
		return nil, apperr.Forbidden("only admins can list staff")
	}
	return s.repo.ListByShop(ctx, p.ShopID)
}

func (s *service) Profile(ctx context.Context, p tenant.Principal) (*Profile, error) {
	return s.repo.GetProfile(ctx, p.UserID)
}

func (s *service) ChangePassword(ctx context.Context, p tenant.Principal, req ChangePasswordRequest) error {
	u, err := s.repo.GetUserByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if !CheckPassword(u.PasswordHash, req.OldPassword) {
		return apperr.Invalid("old password is incorrect")
	}
	if req.OldPassword == req.NewPassword {
		return apperr.Invalid("new password must differ from the old password")
	}
	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, u.ID, hashed); err != nil {
		return err
	}
	s.log.Info("password changed", zap.String("username", u.Username))
	return nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	return u, err
}
