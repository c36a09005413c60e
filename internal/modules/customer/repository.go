package customer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines customer storage. Every method is scoped to a shop.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*Customer, error)
	// List returns the shop's customers by name. A non-empty query matches name or mobile.
	List(ctx context.Context, shopID uuid.UUID, query string) ([]*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, shopID, id uuid.UUID) error
}
