package usershandler

import (
	"ptw-backend/config"
	"ptw-backend/db"
	departmentprovider "ptw-backend/lib/dicts/department"
	permitflow "ptw-backend/lib/permit-flow"
	usersstore "ptw-backend/lib/users/store"
	authutils "ptw-backend/lib/utils/auth-utils"
	initchecker "ptw-backend/lib/utils/init-checker"
	"ptw-backend/models"
	apimodels "ptw-backend/models/api"
	usersapimodels "ptw-backend/models/api/users"
	dbmodels "ptw-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(request usersapimodels.User) (id, hMsg string, err error)
	Update(actorID, userID string, request usersapimodels.UserUpdate) (hMsg string, err error)
	Delete(actorID, userID string) (hMsg string, err error)
	Get(userID string) (user *usersapimodels.UserView, err error)
	List(filter usersapimodels.UserFilter, pagination apimodels.Pagination) (list []usersapimodels.UserView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithStore(usersstore.NewInstance(db.DB), departmentprovider.Instance, config.Conf.App.CorporateDomain)
}

func NewHandlerWithStore(store usersstore.Provider, departments departmentprovider.Provider, corporateDomain string) Provider {
	instance := impl{
		store:           store,
		departments:     departments,
		corporateDomain: corporateDomain,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"departments", instance.departments,
	)
	return instance
}

type impl struct {
	store           usersstore.Provider
	departments     departmentprovider.Provider
	corporateDomain string
}

func (i impl) Create(request usersapimodels.User) (id, hMsg string, err error) {
	logger := log.WithField("email", request.Email)
	existed, err := i.store.FindByEmail(request.Email)
	if err != nil {
		return "", "", errors.Wrap(err, "error finding user by email")
	}
	if existed != nil {
		return "", "user with this email already exists", nil
	}
	rec := dbmodels.User{
		FirstName:    strings.TrimSpace(request.FirstName),
		LastName:     strings.TrimSpace(request.LastName),
		Email:        strings.ToLower(strings.TrimSpace(request.Email)),
		PhoneNumber:  request.PhoneNumber,
		RoleID:       request.Role,
		DepartmentID: request.DepartmentID,
		IsActive:     request.IsActive,
	}
	hMsg, err = i.checkRoleAndDepartment(rec, "")
	if err != nil || hMsg != "" {
		return "", hMsg, err
	}
	rec.Password, err = authutils.HashPassword(request.Password)
	if err != nil {
		return "", "", err
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", "", errors.Wrap(err, "error creating user")
	}
	logger.
		WithField("user_id", id).
		WithField("role", rec.RoleID).
		Info("user created")
	return id, "", nil
}

func (i impl) Update(actorID, userID string, request usersapimodels.UserUpdate) (hMsg string, err error) {
	logger := log.WithField("user_id", userID)
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return "", errors.Wrap(err, "error getting user")
	}
	if rec == nil {
		return "user not found", nil
	}
	currentRole := rec.RoleID
	updMap := map[string]interface{}{}
	if request.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*request.Email))
		if email != rec.Email {
			existed, err := i.store.FindByEmail(email)
			if err != nil {
				return "", errors.Wrap(err, "error finding user by email")
			}
			if existed != nil {
				return "user with this email already exists", nil
			}
		}
		rec.Email = email
		updMap["Email"] = email
	}
	if request.FirstName != nil {
		updMap["FirstName"] = strings.TrimSpace(*request.FirstName)
	}
	if request.LastName != nil {
		updMap["LastName"] = strings.TrimSpace(*request.LastName)
	}
	if request.PhoneNumber != nil {
		updMap["PhoneNumber"] = *request.PhoneNumber
	}
	if request.Role != nil {
		rec.RoleID = *request.Role
		updMap["RoleID"] = *request.Role
	}
	if request.DepartmentID != nil {
		rec.DepartmentID = *request.DepartmentID
		updMap["DepartmentID"] = *request.DepartmentID
	}
	if request.IsActive != nil {
		if !*request.IsActive && actorID == userID {
			return "you cannot deactivate yourself", nil
		}
		updMap["IsActive"] = *request.IsActive
	}
	if request.Password != nil {
		hash, err := authutils.HashPassword(*request.Password)
		if err != nil {
			return "", err
		}
		updMap["Password"] = hash
	}
	hMsg, err = i.checkRoleAndDepartment(*rec, currentRole)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	if err = i.store.Update(userID, updMap); err != nil {
		return "", errors.Wrap(err, "error updating user")
	}
	logger.Info("user updated")
	return "", nil
}

// checkRoleAndDepartment applies the role rules: external users are receivers only and
// the administrator role is kept only by a user that already holds it.
func (i impl) checkRoleAndDepartment(rec dbmodels.User, currentRole models.UserRole) (hMsg string, err error) {
	if !rec.RoleID.IsValid() {
		return "unknown role", nil
	}
	selectable := false
	for _, role := range permitflow.SelectableUserRoles(currentRole) {
		if role == rec.RoleID {
			selectable = true
			break
		}
	}
	if !selectable {
		return "role " + rec.RoleID.ToHuman() + " cannot be assigned", nil
	}
	if rec.IsExternal(i.corporateDomain) && rec.RoleID != models.RoleReceiver {
		return "external users can only be permit receivers", nil
	}
	department, err := i.departments.Get(rec.DepartmentID)
	if err != nil {
		return "", err
	}
	if department == nil {
		return "department not found", nil
	}
	return "", nil
}

func (i impl) Delete(actorID, userID string) (hMsg string, err error) {
	if actorID == userID {
		return "you cannot delete yourself", nil
	}
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return "", errors.Wrap(err, "error getting user")
	}
	if rec == nil {
		return "user not found", nil
	}
	if err = i.store.Delete(userID); err != nil {
		return "", errors.Wrap(err, "error deleting user")
	}
	log.WithField("user_id", userID).Info("user deleted")
	return "", nil
}

func (i impl) Get(userID string) (*usersapimodels.UserView, error) {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "error getting user")
	}
	if rec == nil {
		return nil, nil
	}
	view := usersapimodels.UserConvert(*rec)
	return &view, nil
}

func (i impl) List(filter usersapimodels.UserFilter, pagination apimodels.Pagination) (list []usersapimodels.UserView, rowCount int64, err error) {
	page, limit := pagination.GetPage()
	recList, rowCount, err := i.store.List(usersstore.Filter{
		Search:       filter.Search,
		Role:         filter.Role,
		DepartmentID: filter.DepartmentID,
	}, page, limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "error getting user list")
	}
	list = make([]usersapimodels.UserView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, usersapimodels.UserConvert(rec))
	}
	return list, rowCount, nil
}
