package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a buyer of one shop. Quotations copy its contact fields.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	ShopID    uuid.UUID `json:"shop_id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	GSTIN     string    `json:"gstin,omitempty"`
	State     string    `json:"state,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Request is the body of create and update.
type Request struct {
	Name    string `json:"name" validate:"required,max=120"`
	Mobile  string `json:"mobile,omitempty" validate:"max=20"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty" validate:"max=500"`
	GSTIN   string `json:"gstin,omitempty" validate:"omitempty,len=15"`
	State   string `json:"state,omitempty" validate:"max=60"`
}
