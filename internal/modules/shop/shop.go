package shop

import (
	"time"

	"github.com/google/uuid"

	"github.com/BUNNY1710/glassshop-backend/internal/modules/user"
)

// Shop is the tenant. State drives the GST intra/inter-state split.
type Shop struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	State     string    `json:"state,omitempty"`
	GSTIN     string    `json:"gstin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterRequest creates a shop together with its first admin login.
type RegisterRequest struct {
	ShopName string `json:"shopName" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty" validate:"max=20"`
	Address  string `json:"address,omitempty"`
	State    string `json:"state,omitempty" validate:"max=60"`
	GSTIN    string `json:"gstin,omitempty" validate:"omitempty,len=15"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateRequest edits the shop profile. Empty fields are left unchanged.
type UpdateRequest struct {
	Name    string `json:"name,omitempty" validate:"max=120"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"max=20"`
	Address string `json:"address,omitempty"`
	State   string `json:"state,omitempty" validate:"max=60"`
	GSTIN   string `json:"gstin,omitempty" validate:"omitempty,len=15"`
}

// Registration is the result of RegisterShop.
type Registration struct {
	Message string     `json:"message"`
	Shop    *Shop      `json:"shop"`
	Owner   *user.User `json:"owner"`
}
