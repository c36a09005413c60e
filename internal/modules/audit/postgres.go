package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BUNNY1710/glassshop-backend/internal/database"
)

type postgresRepo struct{ db database.DBTX }

// NewPostgresRepository creates an audit repository. Pass a *sql.Tx to append
// within the caller's transaction.
func NewPostgresRepository(db database.DBTX) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Append(ctx context.Context, e *Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs
		  (id, shop_id, username, role, action, glass_type, quantity, stand_no, to_stand_no, height, width, unit, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		e.ID, e.ShopID, e.Username, e.Role, e.Action, e.GlassType, e.Quantity,
		e.StandNo, toNullInt(e.ToStandNo), e.Height, e.Width, e.Unit, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *postgresRepo) List(ctx context.Context, shopID uuid.UUID, f Filter) ([]*Entry, error) {
	query := `SELECT id, shop_id, username, role, action, glass_type, quantity, stand_no, to_stand_no,
	                 height, width, unit, created_at
	          FROM audit_logs WHERE shop_id = $1`
	args := []any{shopID}
	n := 2
	if f.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", n)
		args = append(args, f.Action)
		n++
	}
	if !f.Since.IsZero() {
		query += fmt.Sprintf(" AND created_at >= $%d", n)
		args = append(args, f.Since)
		n++
	}
	if !f.Until.IsZero() {
		query += fmt.Sprintf(" AND created_at < $%d", n)
		args = append(args, f.Until)
		n++
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		e := &Entry{}
		var toStand sql.NullInt64
		if err := rows.Scan(&e.ID, &e.ShopID, &e.Username, &e.Role, &e.Action, &e.GlassType,
			&e.Quantity, &e.StandNo, &toStand, &e.Height, &e.Width, &e.Unit, &e.CreatedAt); err != nil {
			return nil, err
		}
		if toStand.Valid {
			v := int(toStand.Int64)
			e.ToStandNo = &v
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresRepo) CountByAction(ctx context.Context, shopID uuid.UUID, action Action) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM audit_logs WHERE shop_id = $1 AND action = $2`,
		shopID, action).Scan(&n)
	return n, err
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
