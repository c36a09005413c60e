package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

// Service defines the interface for user-related business logic.
type Service interface {
	// CreateStaff adds a ROLE_STAFF login to the caller's shop. Admin only.
	CreateStaff(ctx context.Context, p tenant.Principal, req CreateStaffRequest) (*User, error)

	// ListStaff returns every login of the caller's shop. Admin only.
	ListStaff(ctx context.Context, p tenant.Principal) ([]*User, error)

	Profile(ctx context.Context, p tenant.Principal) (*Profile, error)
	ChangePassword(ctx context.Context, p tenant.Principal, req ChangePasswordRequest) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
}
