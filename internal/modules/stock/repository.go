package stock

import (
	"context"

	"github.com/google/uuid"

	"github.com/BUNNY1710/glassshop-backend/internal/modules/audit"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/catalog"
)

// Repository defines stock data storage.
type Repository interface {
	// WithinTx runs fn against repositories bound to a single transaction.
	WithinTx(ctx context.Context, fn func(tx TxRepository) error) error

	ListByShop(ctx context.Context, shopID uuid.UUID) ([]*Stock, error)
	ListLow(ctx context.Context, shopID uuid.UUID) ([]*Stock, error)
	ListByGlassType(ctx context.Context, shopID uuid.UUID, glassType string) ([]*Stock, error)
	RecentHistory(ctx context.Context, shopID uuid.UUID, limit int) ([]*History, error)
	SetMinQuantity(ctx context.Context, shopID, id uuid.UUID, minQty int) (*Stock, error)
}

// TxRepository is the set of writes a stock movement performs atomically.
type TxRepository interface {
	ResolveGlass(ctx context.Context, spec catalog.Spec) (*catalog.Glass, error)

	// LockStock returns the row for key locked for update, or apperr.ErrNotFound.
	LockStock(ctx context.Context, key Key) (*Stock, error)
	InsertStock(ctx context.Context, s *Stock) error
	SetQuantity(ctx context.Context, id uuid.UUID, qty int) error

	AppendHistory(ctx context.Context, h *History) error
	// LatestHistory returns the newest history row of the shop, locked, or apperr.ErrNotFound.
	LatestHistory(ctx context.Context, shopID uuid.UUID) (*History, error)
	DeleteHistory(ctx context.Context, id uuid.UUID) error

	AppendAudit(ctx context.Context, e *audit.Entry) error
}
