package shop

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/user"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

type Service interface {
	// RegisterShop creates a shop and its ROLE_ADMIN owner atomically.
	RegisterShop(ctx context.Context, req RegisterRequest) (*Registration, error)
	GetShop(ctx context.Context, p tenant.Principal) (*Shop, error)
	UpdateShop(ctx context.Context, p tenant.Principal, req UpdateRequest) (*Shop, error)
	ListShops(ctx context.Context) ([]*Shop, error)
}

type service struct {
	shopRepo Repository
	userRepo user.Repository
	log      *zap.Logger
}

func NewService(shopRepo Repository, userRepo user.Repository, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{shopRepo: shopRepo, userRepo: userRepo, log: log}
}

func (s *service) RegisterShop(ctx context.Context, req RegisterRequest) (*Registration, error) {
	username := strings.TrimSpace(req.Username)
	exists, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("username already exists")
	}

	hashed, err := user.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	shop := &Shop{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.ShopName),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
		State:   strings.TrimSpace(req.State),
		GSTIN:   strings.ToUpper(strings.TrimSpace(req.GSTIN)),
	}
	owner := &user.User{
		ID:           uuid.New(),
		ShopID:       uuid.NullUUID{UUID: shop.ID, Valid: true},
		Username:     username,
		Email:        shop.Email,
		PasswordHash: hashed,
		Role:         tenant.RoleAdmin,
	}
	if err := s.shopRepo.CreateWithOwner(ctx, shop, owner); err != nil {
		return nil, err
	}

	s.log.Info("shop registered",
		zap.String("shop_id", shop.ID.String()),
		zap.String("shop_name", shop.Name),
		zap.String("owner", owner.Username))
	return &Registration{Message: "Shop registered successfully", Shop: shop, Owner: owner}, nil
}

func (s *service) GetShop(ctx context.Context, p tenant.Principal) (*Shop, error) {
	return s.shopRepo.GetShopByID(ctx, p.ShopID)
}

func (s *service) UpdateShop(ctx context.Context, p tenant.Principal, req UpdateRequest) (*Shop, error) {
	if !p.IsAdmin() {
		return nil, apperr.Forbidden("only admins can edit the shop profile")
	}
	shop, err := s.shopRepo.GetShopByID(ctx, p.ShopID)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&shop.Name, req.Name)
	set(&shop.Email, req.Email)
	set(&shop.Phone, req.Phone)
	set(&shop.Address, req.Address)
	set(&shop.State, req.State)
	set(&shop.GSTIN, strings.ToUpper(req.GSTIN))

	if err := s.shopRepo.UpdateShop(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *service) ListShops(ctx context.Context) ([]*Shop, error) {
	return s.shopRepo.ListShops(ctx)
}
