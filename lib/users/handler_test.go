package usershandler

import (
	usersstore "ptw-backend/lib/users/store"
	"ptw-backend/models"
	apimodels "ptw-backend/models/api"
	dictapimodels "ptw-backend/models/api/dict"
	usersapimodels "ptw-backend/models/api/users"
	dbmodels "ptw-backend/models/db"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	recs map[string]dbmodels.User
}

func (f *fakeStore) Create(rec dbmodels.User) (string, error) {
	rec.ID = uuid.NewString()
	f.recs[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeStore) Update(userID string, updMap map[string]interface{}) error {
	rec := f.recs[userID]
	if v, ok := updMap["RoleID"]; ok {
		rec.RoleID = v.(models.UserRole)
	}
	if v, ok := updMap["IsActive"]; ok {
		rec.IsActive = v.(bool)
	}
	if v, ok := updMap["Email"]; ok {
		rec.Email = v.(string)
	}
	f.recs[userID] = rec
	return nil
}

func (f *fakeStore) Delete(userID string) error {
	delete(f.recs, userID)
	return nil
}

func (f *fakeStore) GetByID(userID string) (*dbmodels.User, error) {
	rec, ok := f.recs[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStore) FindByEmail(email string) (*dbmodels.User, error) {
	for _, rec := range f.recs {
		if strings.EqualFold(rec.Email, email) {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) List(filter usersstore.Filter, page, limit int) ([]dbmodels.User, int64, error) {
	list := []dbmodels.User{}
	for _, rec := range f.recs {
		if filter.Role != "" && rec.RoleID != filter.Role {
			continue
		}
		list = append(list, rec)
	}
	return list, int64(len(list)), nil
}

func (f *fakeStore) ListActiveByRoles(roles []models.UserRole) ([]dbmodels.User, error) {
	return nil, nil
}

type fakeDepartments struct{}

func (fakeDepartments) Create(request dictapimodels.DepartmentData) (string, error) { return "", nil }
func (fakeDepartments) Update(code string, request dictapimodels.DepartmentData) (string, error) {
	return "", nil
}
func (fakeDepartments) Get(code string) (*dictapimodels.DepartmentView, error) {
	name, ok := models.DefaultDepartments[code]
	if !ok {
		return nil, nil
	}
	return &dictapimodels.DepartmentView{DepartmentData: dictapimodels.DepartmentData{Code: code, Name: name}}, nil
}
func (fakeDepartments) List() ([]dictapimodels.DepartmentView, error) { return nil, nil }
func (fakeDepartments) Delete(code string) (string, error)             { return "", nil }
func (fakeDepartments) DepartmentMap() (map[string]string, error) {
	return models.DefaultDepartments, nil
}

func newUser(email string, role models.UserRole) usersapimodels.User {
	return usersapimodels.User{
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		Password:     "password123",
		Role:         role,
		DepartmentID: "ASM",
		IsActive:     true,
	}
}

func TestUsersHandler(t *testing.T) {
	store := &fakeStore{recs: map[string]dbmodels.User{}}
	h := NewHandlerWithStore(store, fakeDepartments{}, "corp.com")

	t.Run(`create hashes password`, func(t *testing.T) {
		id, hMsg, err := h.Create(newUser("iss@corp.com", models.RoleIssuer))
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.NotEqual(t, "password123", store.recs[id].Password)
		require.NotEmpty(t, store.recs[id].Password)
	})

	t.Run(`duplicate email`, func(t *testing.T) {
		_, hMsg, err := h.Create(newUser("ISS@corp.com", models.RoleHOD))
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`external users are receivers only`, func(t *testing.T) {
		_, hMsg, err := h.Create(newUser("contractor@vendor.com", models.RoleIssuer))
		require.Nil(t, err)
		require.Equal(t, "external users can only be permit receivers", hMsg)

		_, hMsg, err = h.Create(newUser("contractor@vendor.com", models.RoleReceiver))
		require.Nil(t, err)
		require.Empty(t, hMsg)
	})

	t.Run(`admin role is not handed out`, func(t *testing.T) {
		_, hMsg, err := h.Create(newUser("boss@corp.com", models.RoleAdmin))
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`unknown department`, func(t *testing.T) {
		user := newUser("nodep@corp.com", models.RoleHOD)
		user.DepartmentID = "XXX"
		_, hMsg, err := h.Create(user)
		require.Nil(t, err)
		require.Equal(t, "department not found", hMsg)
	})

	t.Run(`existing admin keeps role on update`, func(t *testing.T) {
		store.recs["admin-1"] = dbmodels.User{
			BaseModel:    dbmodels.BaseModel{ID: "admin-1"},
			Email:        "admin@corp.com",
			RoleID:       models.RoleAdmin,
			DepartmentID: "IT",
			IsActive:     true,
		}
		role := models.RoleAdmin
		hMsg, err := h.Update("other", "admin-1", usersapimodels.UserUpdate{Role: &role})
		require.Nil(t, err)
		require.Empty(t, hMsg)
	})

	t.Run(`self deactivate and delete are refused`, func(t *testing.T) {
		inactive := false
		hMsg, err := h.Update("admin-1", "admin-1", usersapimodels.UserUpdate{IsActive: &inactive})
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)

		hMsg, err = h.Delete("admin-1", "admin-1")
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`list by role`, func(t *testing.T) {
		list, rowCount, err := h.List(usersapimodels.UserFilter{Role: models.RoleReceiver}, apimodels.Pagination{})
		require.Nil(t, err)
		require.Equal(t, int64(1), rowCount)
		require.Equal(t, "contractor@vendor.com", list[0].Email)
	})
}
