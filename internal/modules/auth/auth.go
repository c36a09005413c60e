package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LoginRequest is the payload for /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and who it belongs to.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Username  string        `json:"username"`
	Role      string        `json:"role"`
	ShopID    uuid.NullUUID `json:"shop_id"`
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}
