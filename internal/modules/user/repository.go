package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for users.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// ListByShop returns every user of a shop, admins first.
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]*User, error)

	// GetProfile joins the user with its shop name.
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)

	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	UsernameExists(ctx context.Context, username string) (bool, error)
}
