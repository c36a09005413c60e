package audit

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines access to audit_logs. It has no update or delete.
type Repository interface {
	Append(ctx context.Context, e *Entry) error

	// List returns entries of a shop, newest first.
	List(ctx context.Context, shopID uuid.UUID, f Filter) ([]*Entry, error)

	CountByAction(ctx context.Context, shopID uuid.UUID, action Action) (int, error)
}
