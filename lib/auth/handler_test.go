package authhandler

import (
	"ptw-backend/config"
	usersstore "ptw-backend/lib/users/store"
	authutils "ptw-backend/lib/utils/auth-utils"
	"ptw-backend/models"
	dbmodels "ptw-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	user     dbmodels.User
	lastAuth bool
}

func (f *fakeStore) Create(rec dbmodels.User) (string, error) { return "", nil }
func (f *fakeStore) Update(userID string, updMap map[string]interface{}) error {
	_, f.lastAuth = updMap["LastLogin"]
	return nil
}
func (f *fakeStore) Delete(userID string) error { return nil }
func (f *fakeStore) GetByID(userID string) (*dbmodels.User, error) {
	if userID != f.user.ID {
		return nil, nil
	}
	rec := f.user
	return &rec, nil
}
func (f *fakeStore) FindByEmail(email string) (*dbmodels.User, error) {
	if email != f.user.Email {
		return nil, nil
	}
	rec := f.user
	return &rec, nil
}
func (f *fakeStore) List(filter usersstore.Filter, page, limit int) ([]dbmodels.User, int64, error) {
	return nil, 0, nil
}
func (f *fakeStore) ListActiveByRoles(roles []models.UserRole) ([]dbmodels.User, error) {
	return nil, nil
}

func TestAuthHandler(t *testing.T) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60
	config.Conf.Auth.JWTRefreshExpireInSec = 120

	hash, err := authutils.HashPassword("password123")
	require.Nil(t, err)
	store := &fakeStore{user: dbmodels.User{
		BaseModel:    dbmodels.BaseModel{ID: "user-1"},
		Email:        "hod@corp.com",
		Password:     hash,
		FirstName:    "Helen",
		LastName:     "Head",
		RoleID:       models.RoleHOD,
		DepartmentID: "OPS",
		Department:   &dbmodels.Department{Code: "OPS", Name: "Operations"},
		IsActive:     true,
	}}
	h := NewHandlerWithStore(store, "corp.com")

	t.Run(`login`, func(t *testing.T) {
		resp, hMsg, err := h.Login("hod@corp.com", "password123")
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.NotEmpty(t, resp.Token)
		require.NotEmpty(t, resp.RefreshToken)
		require.True(t, store.lastAuth)

		_, hMsg, err = h.Login("hod@corp.com", "wrong")
		require.Nil(t, err)
		require.Equal(t, wrongCredentials, hMsg)

		_, hMsg, err = h.Login("nobody@corp.com", "password123")
		require.Nil(t, err)
		require.Equal(t, wrongCredentials, hMsg)
	})

	t.Run(`refresh`, func(t *testing.T) {
		resp, _, err := h.Login("hod@corp.com", "password123")
		require.Nil(t, err)
		refreshed, hMsg, err := h.RefreshToken(resp.RefreshToken)
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.NotEmpty(t, refreshed.Token)

		_, hMsg, err = h.RefreshToken(resp.Token)
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`inactive user`, func(t *testing.T) {
		store.user.IsActive = false
		defer func() { store.user.IsActive = true }()
		_, hMsg, err := h.Login("hod@corp.com", "password123")
		require.Nil(t, err)
		require.Equal(t, "user is deactivated", hMsg)
	})

	t.Run(`me`, func(t *testing.T) {
		me, err := h.Me("user-1")
		require.Nil(t, err)
		require.Equal(t, "Operations", me.DepartmentName)
		require.Equal(t, "HOD", me.Role)
		require.False(t, me.IsExternal)
	})
}
