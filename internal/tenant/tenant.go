// Package tenant carries the authenticated caller and the shop it belongs to.
package tenant

import (
	"context"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "ROLE_ADMIN"
	RoleStaff = "ROLE_STAFF"
)

// Principal is the authenticated caller. Every business query is scoped to ShopID.
type Principal struct {
	UserID   uuid.UUID `json:"user_id"`
	ShopID   uuid.UUID `json:"shop_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
