package stock

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/database"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/audit"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/catalog"
)

const stockSelect = `
	SELECT s.id, s.shop_id, s.stand_no, s.height, s.width, s.quantity, s.min_quantity, s.updated_at,
	       g.id, g.type, g.thickness, g.unit, g.created_at
	FROM stock s JOIN glass g ON g.id = s.glass_id`

const historySelect = `
	SELECT h.id, h.shop_id, h.stand_no, h.to_stand_no, h.height, h.width, h.quantity, h.action, h.username, h.created_at,
	       g.id, g.type, g.thickness, g.unit, g.created_at
	FROM stock_history h JOIN glass g ON g.id = h.glass_id`

func scanStock(scan func(...any) error) (*Stock, error) {
	s := &Stock{Glass: &catalog.Glass{}}
	if err := scan(&s.ID, &s.ShopID, &s.StandNo, &s.Height, &s.Width, &s.Quantity, &s.MinQuantity, &s.UpdatedAt,
		&s.Glass.ID, &s.Glass.Type, &s.Glass.Thickness, &s.Glass.Unit, &s.Glass.CreatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func scanHistory(scan func(...any) error) (*History, error) {
	h := &History{Glass: &catalog.Glass{}}
	var toStand sql.NullInt64
	if err := scan(&h.ID, &h.ShopID, &h.StandNo, &toStand, &h.Height, &h.Width, &h.Quantity, &h.Action, &h.Username, &h.CreatedAt,
		&h.Glass.ID, &h.Glass.Type, &h.Glass.Thickness, &h.Glass.Unit, &h.Glass.CreatedAt); err != nil {
		return nil, err
	}
	if toStand.Valid {
		v := int(toStand.Int64)
		h.ToStandNo = &v
	}
	return h, nil
}

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) WithinTx(ctx context.Context, fn func(tx TxRepository) error) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&txRepo{
			tx:      tx,
			catalog: catalog.NewPostgresRepository(tx),
			audit:   audit.NewPostgresRepository(tx),
		})
	})
}

func (r *postgresRepo) list(ctx context.Context, query string, args ...any) ([]*Stock, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Stock{}
	for rows.Next() {
		s, err := scanStock(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *postgresRepo) ListByShop(ctx context.Context, shopID uuid.UUID) ([]*Stock, error) {
	return r.list(ctx, stockSelect+` WHERE s.shop_id = $1 ORDER BY s.stand_no, g.thickness, g.type`, shopID)
}

func (r *postgresRepo) ListLow(ctx context.Context, shopID uuid.UUID) ([]*Stock, error) {
	return r.list(ctx, stockSelect+`
		WHERE s.shop_id = $1 AND s.quantity < s.min_quantity
		ORDER BY (s.min_quantity - s.quantity) DESC, s.stand_no`, shopID)
}

func (r *postgresRepo) ListByGlassType(ctx context.Context, shopID uuid.UUID, glassType string) ([]*Stock, error) {
	return r.list(ctx, stockSelect+`
		WHERE s.shop_id = $1 AND g.type = $2 AND s.quantity > 0
		ORDER BY s.stand_no`, shopID, glassType)
}

func (r *postgresRepo) RecentHistory(ctx context.Context, shopID uuid.UUID, limit int) ([]*History, error) {
	rows, err := r.db.QueryContext(ctx, historySelect+`
		WHERE h.shop_id = $1 ORDER BY h.created_at DESC LIMIT $2`, shopID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*History{}
	for rows.Next() {
		h, err := scanHistory(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

func (r *postgresRepo) SetMinQuantity(ctx context.Context, shopID, id uuid.UUID, minQty int) (*Stock, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE stock SET min_quantity = $1, updated_at = NOW() WHERE id = $2 AND shop_id = $3`,
		minQty, id, shopID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperr.NotFound("stock not found")
	}
	s, err := scanStock(r.db.QueryRowContext(ctx, stockSelect+` WHERE s.id = $1`, id).Scan)
	if err != nil {
		return nil, apperr.FromDB(err, "stock")
	}
	return s, nil
}

type txRepo struct {
	tx      *sql.Tx
	catalog catalog.Repository
	audit   audit.Repository
}

func (r *txRepo) ResolveGlass(ctx context.Context, spec catalog.Spec) (*catalog.Glass, error) {
	return r.catalog.FindOrCreate(ctx, spec)
}

func (r *txRepo) LockStock(ctx context.Context, key Key) (*Stock, error) {
	row := r.tx.QueryRowContext(ctx, stockSelect+`
		WHERE s.shop_id = $1 AND s.glass_id = $2 AND s.stand_no = $3 AND s.height = $4 AND s.width = $5
		FOR UPDATE OF s`,
		key.ShopID, key.GlassID, key.StandNo, key.Height, key.Width)
	s, err := scanStock(row.Scan)
	if err != nil {
		return nil, apperr.FromDB(err, "stock")
	}
	return s, nil
}

func (r *txRepo) InsertStock(ctx context.Context, s *Stock) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.UpdatedAt = time.Now().UTC()
	_, err := r.tx.ExecContext(ctx, `
		INSERT INTO stock (id, shop_id, glass_id, stand_no, height, width, quantity, min_quantity, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		s.ID, s.ShopID, s.Glass.ID, s.StandNo, s.Height, s.Width, s.Quantity, s.MinQuantity, s.UpdatedAt)
	return apperr.FromDB(err, "stock")
}

func (r *txRepo) SetQuantity(ctx context.Context, id uuid.UUID, qty int) error {
	_, err := r.tx.ExecContext(ctx,
		`UPDATE stock SET quantity = $1, updated_at = NOW() WHERE id = $2`, qty, id)
	return err
}

func (r *txRepo) AppendHistory(ctx context.Context, h *History) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	var toStand sql.NullInt64
	if h.ToStandNo != nil {
		toStand = sql.NullInt64{Int64: int64(*h.ToStandNo), Valid: true}
	}
	_, err := r.tx.ExecContext(ctx, `
		INSERT INTO stock_history (id, shop_id, glass_id, stand_no, to_stand_no, height, width, quantity, action, username, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		h.ID, h.ShopID, h.Glass.ID, h.StandNo, toStand, h.Height, h.Width, h.Quantity, h.Action, h.Username, h.CreatedAt)
	return err
}

func (r *txRepo) LatestHistory(ctx context.Context, shopID uuid.UUID) (*History, error) {
	row := r.tx.QueryRowContext(ctx, historySelect+`
		WHERE h.shop_id = $1 ORDER BY h.created_at DESC LIMIT 1
		FOR UPDATE OF h`, shopID)
	h, err := scanHistory(row.Scan)
	if err != nil {
		return nil, apperr.FromDB(err, "history")
	}
	return h, nil
}

func (r *txRepo) DeleteHistory(ctx context.Context, id uuid.UUID) error {
	_, err := r.tx.ExecContext(ctx, `DELETE FROM stock_history WHERE id = $1`, id)
	return err
}

func (r *txRepo) AppendAudit(ctx context.Context, e *audit.Entry) error {
	return r.audit.Append(ctx, e)
}
