package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action is the kind of stock movement an entry records.
type Action string

const (
	ActionAdd      Action = "ADD"
	ActionRemove   Action = "REMOVE"
	ActionTransfer Action = "TRANSFER"
	ActionUndo     Action = "UNDO"
)

// Entry is one append-only audit row. Nothing updates or deletes entries.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	ShopID    uuid.UUID `json:"shop_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Action    Action    `json:"action"`
	GlassType string    `json:"glass_type"`
	Quantity  int       `json:"quantity"`
	StandNo   int       `json:"stand_no"`
	ToStandNo *int      `json:"to_stand_no,omitempty"`
	Height    string    `json:"height"`
	Width     string    `json:"width"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"timestamp"`
}

// Filter narrows List. Zero values mean "any".
type Filter struct {
	Action Action
	Since  time.Time
	Until  time.Time
	Limit  int
}

// TransferCount is the response of /audit/transfer-count.
type TransferCount struct {
	Count int `json:"count"`
}
