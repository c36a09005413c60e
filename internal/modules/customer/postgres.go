package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/database"
)

const customerColumns = `id, shop_id, name, mobile, email, address, gstin, state, created_at, updated_at`

type postgresRepo struct{ db database.DBTX }

func NewPostgresRepository(db database.DBTX) Repository { return &postgresRepo{db: db} }

func scanCustomer(scan func(...any) error) (*Customer, error) {
	c := &Customer{}
	if err := scan(&c.ID, &c.ShopID, &c.Name, &c.Mobile, &c.Email, &c.Address, &c.GSTIN, &c.State,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) Create(ctx context.Context, c *Customer) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (id, shop_id, name, mobile, email, address, gstin, state)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		c.ID, c.ShopID, c.Name, c.Mobile, c.Email, c.Address, c.GSTIN, c.State).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	return apperr.FromDB(err, "customer")
}

func (r *postgresRepo) GetByID(ctx context.Context, shopID, id uuid.UUID) (*Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1 AND shop_id = $2`, id, shopID)
	c, err := scanCustomer(row.Scan)
	if err != nil {
		return nil, apperr.FromDB(err, "customer")
	}
	return c, nil
}

func (r *postgresRepo) List(ctx context.Context, shopID uuid.UUID, query string) ([]*Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers WHERE shop_id = $1`
	args := []any{shopID}
	if query != "" {
		q += ` AND (name ILIKE $2 OR mobile ILIKE $2)`
		args = append(args, "%"+query+"%")
	}
	q += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []*Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, c *Customer) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE customers
		SET name = $1, mobile = $2, email = $3, address = $4, gstin = $5, state = $6, updated_at = NOW()
		WHERE id = $7 AND shop_id = $8
		RETURNING created_at, updated_at`,
		c.Name, c.Mobile, c.Email, c.Address, c.GSTIN, c.State, c.ID, c.ShopID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	return apperr.FromDB(err, "customer")
}

func (r *postgresRepo) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1 AND shop_id = $2`, id, shopID)
	if err != nil {
		return apperr.FromDB(err, "customer")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("customer not found")
	}
	return nil
}
