package shop

import (
	"context"

	"github.com/google/uuid"

	"github.com/BUNNY1710/glassshop-backend/internal/modules/user"
)

// Repository defines data access for shops.
type Repository interface {
	// CreateWithOwner inserts the shop and its admin user in one transaction.
	CreateWithOwner(ctx context.Context, s *Shop, owner *user.User) error

	GetShopByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	UpdateShop(ctx context.Context, s *Shop) error
	ListShops(ctx context.Context) ([]*Shop, error)
}
