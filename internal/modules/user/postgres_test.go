package user

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgres_GetUserByUsername(t *testing.T) {
	repo, mock := newMockRepo(t)
	id, shopID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + userColumns + ` FROM users WHERE username = $1`)).
		WithArgs("owner").
		WillReturnRows(sqlmock.NewRows([]string{"id", "shop_id", "username", "email", "password_hash", "role", "created_at", "updated_at"}).
			AddRow(id.String(), shopID.String(), "owner", "o@shop.in", "hash", "ROLE_ADMIN", now, now))

	u, err := repo.GetUserByUsername(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.True(t, u.ShopID.Valid)
	assert.Equal(t, shopID, u.ShopID.UUID)
	assert.Equal(t, "ROLE_ADMIN", u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetUserByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(id).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByID(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPostgres_CreateUser_Duplicate(t *testing.T) {
	repo, mock := newMockRepo(t)
	u := &User{ID: uuid.New(), Username: "owner", PasswordHash: "h", Role: "ROLE_ADMIN"}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(u.ID, u.ShopID, "owner", "", "h", "ROLE_ADMIN", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.CreateUser(ctx, u)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.EqualError(t, err, "username already exists")
}

func TestPostgres_GetProfile_WithoutShop(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`LEFT JOIN shops s ON s.id = u.shop_id`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "role", "shop_id", "name"}).
			AddRow(id.String(), "loner", "", "ROLE_STAFF", nil, nil))

	p, err := repo.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.False(t, p.ShopID.Valid)
	assert.Equal(t, "", p.ShopName)
}

func TestPostgres_UpdatePassword_Missing(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs("h", sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.UpdatePassword(ctx, id, "h"), apperr.ErrNotFound)
}

func TestPostgres_UsernameExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("ramesh").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.UsernameExists(ctx, "ramesh")
	require.NoError(t, err)
	assert.True(t, ok)
}
