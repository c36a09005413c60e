package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a login belonging to one shop. ShopID is null only for accounts that
// were never linked to a shop; those cannot reach tenant routes.
type User struct {
	ID           uuid.UUID     `json:"id"`
	ShopID       uuid.NullUUID `json:"shop_id"`
	Username     string        `json:"username"`
	Email        string        `json:"email,omitempty"`
	PasswordHash string        `json:"-"`
	Role         string        `json:"role"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Profile is what /auth/profile returns.
type Profile struct {
	UserID   uuid.UUID     `json:"user_id"`
	Username string        `json:"username"`
	Email    string        `json:"email,omitempty"`
	Role     string        `json:"role"`
	ShopID   uuid.NullUUID `json:"shop_id"`
	ShopName string        `json:"shop_name"`
}

// CreateStaffRequest is the payload for adding a staff login to the caller's shop.
type CreateStaffRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

// ChangePasswordRequest is the payload for /auth/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}
