package invoice

import (
	"context"

	"github.com/google/uuid"
)

// ApplyFunc updates the locked invoice for a new payment and returns the
// payment row to insert. Returning an error aborts the transaction.
type ApplyFunc func(inv *Invoice) (*Payment, error)

type Repository interface {
	// Create assigns the next number under prefix and writes the header and
	// items in one transaction.
	Create(ctx context.Context, inv *Invoice, prefix string) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*Invoice, error)
	List(ctx context.Context, shopID uuid.UUID, status PaymentStatus) ([]*Invoice, error)
	Payments(ctx context.Context, shopID, invoiceID uuid.UUID) ([]*Payment, error)
	// ApplyPayment locks the invoice row, runs fn, then inserts the payment and
	// saves the new paid and due amounts in the same transaction.
	ApplyPayment(ctx context.Context, shopID, id uuid.UUID, fn ApplyFunc) (*Invoice, *Payment, error)
}
