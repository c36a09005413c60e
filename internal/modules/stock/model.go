package stock

import (
	"time"

	"github.com/google/uuid"

	"github.com/BUNNY1710/glassshop-backend/internal/modules/audit"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/catalog"
)

// Stock is the quantity of one glass at one stand, for one cut size.
type Stock struct {
	ID          uuid.UUID      `json:"id"`
	ShopID      uuid.UUID      `json:"shop_id"`
	Glass       *catalog.Glass `json:"glass"`
	StandNo     int            `json:"stand_no"`
	Height      string         `json:"height"`
	Width       string         `json:"width"`
	Quantity    int            `json:"quantity"`
	MinQuantity int            `json:"min_quantity"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// IsLow reports whether the row is below its reorder threshold.
func (s *Stock) IsLow() bool { return s.Quantity < s.MinQuantity }

// Key identifies a stock row inside a shop.
type Key struct {
	ShopID  uuid.UUID
	GlassID uuid.UUID
	StandNo int
	Height  string
	Width   string
}

// History is the reversible record of one movement. Undo consumes the newest row.
type History struct {
	ID        uuid.UUID      `json:"id"`
	ShopID    uuid.UUID      `json:"shop_id"`
	Glass     *catalog.Glass `json:"glass"`
	StandNo   int            `json:"stand_no"`
	ToStandNo *int           `json:"to_stand_no,omitempty"`
	Height    string         `json:"height"`
	Width     string         `json:"width"`
	Quantity  int            `json:"quantity"`
	Action    audit.Action   `json:"action"`
	Username  string         `json:"username"`
	CreatedAt time.Time      `json:"created_at"`
}

// UpdateRequest adds to or removes from one stock row.
type UpdateRequest struct {
	GlassType   string       `json:"glassType" validate:"required,max=40"`
	Thickness   int          `json:"thickness" validate:"gte=0"`
	Unit        string       `json:"unit,omitempty"`
	StandNo     int          `json:"standNo" validate:"gt=0"`
	Quantity    int          `json:"quantity" validate:"gt=0"`
	Action      audit.Action `json:"action" validate:"required"`
	Height      string       `json:"height,omitempty"`
	Width       string       `json:"width,omitempty"`
	MinQuantity *int         `json:"minQuantity,omitempty" validate:"omitempty,gte=0"`
}

// TransferRequest moves quantity between two stands.
type TransferRequest struct {
	GlassType string `json:"glassType" validate:"required,max=40"`
	Thickness int    `json:"thickness" validate:"gte=0"`
	Unit      string `json:"unit,omitempty"`
	Height    string `json:"height,omitempty"`
	Width     string `json:"width,omitempty"`
	FromStand int    `json:"fromStand" validate:"gt=0"`
	ToStand   int    `json:"toStand" validate:"gt=0"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// MinQuantityRequest is the body of PATCH /stock/{id}/min-quantity.
type MinQuantityRequest struct {
	MinQuantity int `json:"minQuantity" validate:"gte=0"`
}

// Result is returned by the mutating operations.
type Result struct {
	Message string `json:"message"`
	Stock   *Stock `json:"stock,omitempty"`
}

// Suggestion is one reorder recommendation.
type Suggestion struct {
	GlassType      string `json:"glass_type"`
	StandNo        int    `json:"stand_no"`
	Height         string `json:"height"`
	Width          string `json:"width"`
	Quantity       int    `json:"quantity"`
	MinQuantity    int    `json:"min_quantity"`
	Gap            int    `json:"gap"`
	RecommendedQty int    `json:"recommended_quantity"`
}
