package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/BUNNY1710/glassshop-backend/internal/database"
)

type postgresRepo struct{ db database.DBTX }

func NewPostgresRepository(db database.DBTX) Repository { return &postgresRepo{db: db} }

func scanGlass(scan func(...any) error) (*Glass, error) {
	g := &Glass{}
	if err := scan(&g.ID, &g.Type, &g.Thickness, &g.Unit, &g.CreatedAt); err != nil {
		return nil, err
	}
	return g, nil
}

// FindOrCreate upserts so concurrent first writes of the same glass resolve to one row.
func (r *postgresRepo) FindOrCreate(ctx context.Context, spec Spec) (*Glass, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO glass (id, type, thickness, unit)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (type, thickness, unit) DO UPDATE SET type = EXCLUDED.type
		RETURNING id, type, thickness, unit, created_at`,
		uuid.New(), spec.Type, spec.Thickness, spec.Unit)
	return scanGlass(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context) ([]*Glass, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, thickness, unit, created_at
		FROM glass ORDER BY thickness ASC, type ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	glasses := []*Glass{}
	for rows.Next() {
		g, err := scanGlass(rows.Scan)
		if err != nil {
			return nil, err
		}
		glasses = append(glasses, g)
	}
	return glasses, rows.Err()
}
