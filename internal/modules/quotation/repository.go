package quotation

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines quotation storage. Reads are scoped to a shop so ids of
// another shop behave as not found.
type Repository interface {
	// Create assigns the next number under prefix and writes the header and
	// items in one transaction.
	Create(ctx context.Context, q *Quotation, prefix string) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*Quotation, error)
	List(ctx context.Context, shopID uuid.UUID, status Status) ([]*Quotation, error)
	UpdateStatus(ctx context.Context, q *Quotation) error
	// Replace rewrites the header and swaps the items in one transaction.
	Replace(ctx context.Context, q *Quotation) error
	Delete(ctx context.Context, shopID, id uuid.UUID) error
}
