package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Glass is a catalog entry shared by all shops, unique by (type, thickness, unit).
type Glass struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Thickness int       `json:"thickness"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

// Spec identifies a glass before it is resolved to a catalog row.
type Spec struct {
	Type      string
	Thickness int
	Unit      string
}
