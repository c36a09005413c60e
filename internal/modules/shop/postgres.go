package shop

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/database"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/user"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL shop repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateWithOwner(ctx context.Context, s *Shop, owner *user.User) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		s.CreatedAt, s.UpdatedAt = now, now
		_, err := tx.ExecContext(ctx, `
			INSERT INTO shops (id, name, email, phone, address, state, gstin, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			s.ID, s.Name, s.Email, s.Phone, s.Address, s.State, s.GSTIN, s.CreatedAt, s.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert shop: %w", err)
		}
		return user.NewPostgresRepository(tx).CreateUser(ctx, owner)
	})
}

func (r *postgresRepository) GetShopByID(ctx context.Context, id uuid.UUID) (*Shop, error) {
	s := &Shop{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, address, state, gstin, created_at, updated_at
		FROM shops
		WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.State, &s.GSTIN, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, apperr.FromDB(err, "shop")
	}
	return s, nil
}

func (r *postgresRepository) UpdateShop(ctx context.Context, s *Shop) error {
	s.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE shops
		SET name = $1, email = $2, phone = $3, address = $4, state = $5, gstin = $6, updated_at = $7
		WHERE id = $8`,
		s.Name, s.Email, s.Phone, s.Address, s.State, s.GSTIN, s.UpdatedAt, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("shop not found")
	}
	return nil
}

func (r *postgresRepository) ListShops(ctx context.Context) ([]*Shop, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, phone, address, state, gstin, created_at, updated_at
		FROM shops
		ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []*Shop
	for rows.Next() {
		s := &Shop{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.State,
			&s.GSTIN, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}
