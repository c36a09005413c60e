package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) CreateUser(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepo) ListByShop(ctx context.Context, shopID uuid.UUID) ([]*User, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *mockRepo) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *mockRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *mockRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

var (
	ctx   = context.Background()
	admin = tenant.Principal{UserID: uuid.New(), ShopID: uuid.New(), Username: "owner", Role: tenant.RoleAdmin}
	staff = tenant.Principal{UserID: uuid.New(), ShopID: admin.ShopID, Username: "ramesh", Role: tenant.RoleStaff}
)

func TestCreateStaff(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)

	repo.On("UsernameExists", ctx, "ramesh").Return(false, nil)
	repo.On("CreateUser", ctx, mock.MatchedBy(func(u *User) bool {
		return u.Username == "ramesh" &&
			u.Role == tenant.RoleStaff &&
			u.ShopID.Valid && u.ShopID.UUID == admin.ShopID &&
			CheckPassword(u.PasswordHash, "secret1")
	})).Return(nil)

	u, err := svc.CreateStaff(ctx, admin, CreateStaffRequest{Username: " ramesh ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ramesh", u.Username)
	repo.AssertExpectations(t)
}

func TestCreateStaff_UsernameTaken(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)
	repo.On("UsernameExists", ctx, "ramesh").Return(true, nil)

	_, err := svc.CreateStaff(ctx, admin, CreateStaffRequest{Username: "ramesh", Password: "secret1"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.EqualError(t, err, "username already exists")
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestCreateStaff_StaffForbidden(t *testing.T) {
	svc := NewService(new(mockRepo), nil)

	_, err := svc.CreateStaff(ctx, staff, CreateStaffRequest{Username: "x", Password: "secret1"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.ListStaff(ctx, staff)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestListStaff_ScopedToShop(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)
	users := []*User{{Username: "owner"}, {Username: "ramesh"}}
	repo.On("ListByShop", ctx, admin.ShopID).Return(users, nil)

	got, err := svc.ListStaff(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestChangePassword(t *testing.T) {
	hash, err := HashPassword("oldpass")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, nil)
		repo.On("GetUserByID", ctx, staff.UserID).Return(&User{ID: staff.UserID, PasswordHash: hash}, nil)
		repo.On("UpdatePassword", ctx, staff.UserID, mock.MatchedBy(func(h string) bool {
			return CheckPassword(h, "newpass")
		})).Return(nil)

		require.NoError(t, svc.ChangePassword(ctx, staff, ChangePasswordRequest{OldPassword: "oldpass", NewPassword: "newpass"}))
		repo.AssertExpectations(t)
	})

	t.Run("wrong old password", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, nil)
		repo.On("GetUserByID", ctx, staff.UserID).Return(&User{ID: staff.UserID, PasswordHash: hash}, nil)

		err := svc.ChangePassword(ctx, staff, ChangePasswordRequest{OldPassword: "nope", NewPassword: "newpass"})
		assert.EqualError(t, err, "old password is incorrect")
		repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("same password", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, nil)
		repo.On("GetUserByID", ctx, staff.UserID).Return(&User{ID: staff.UserID, PasswordHash: hash}, nil)

		err := svc.ChangePassword(ctx, staff, ChangePasswordRequest{OldPassword: "oldpass", NewPassword: "oldpass"})
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})
}

func TestGetUser_NotFound(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)
	id := uuid.New()
	repo.On("GetUserByID", ctx, id).Return(nil, apperr.NotFound("user not found"))

	_, err := svc.GetUser(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
