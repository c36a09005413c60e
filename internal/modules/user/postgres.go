package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/database"
)

type postgresRepository struct {
	db database.DBTX
}

// NewPostgresRepository creates a PostgreSQL user repository. db may be a
// transaction.
func NewPostgresRepository(db database.DBTX) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `id, shop_id, username, email, password_hash, role, created_at, updated_at`

func (r *postgresRepository) CreateUser(ctx context.Context, u *User) error {
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, shop_id, username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.ShopID, u.Username, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt)
	return apperr.FromDB(err, "username")
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *postgresRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *postgresRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE shop_id = $1
		ORDER BY role ASC, username ASC`, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.ID, &u.ShopID, &u.Username, &u.Email, &u.PasswordHash,
			&u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresRepository) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	p := &Profile{}
	var shopName sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.email, u.role, u.shop_id, s.name
		FROM users u
		LEFT JOIN shops s ON s.id = u.shop_id
		WHERE u.id = $1`, id).
		Scan(&p.UserID, &p.Username, &p.Email, &p.Role, &p.ShopID, &shopName)
	if err != nil {
		return nil, apperr.FromDB(err, "user")
	}
	p.ShopName = shopName.String
	return p, nil
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		hash, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *postgresRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *postgresRepository) scanUser(row *sql.Row) (*User, error) {
	u := &User{}
	err := row.Scan(&u.ID, &u.ShopID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, apperr.FromDB(err, "user")
	}
	return u, nil
}
