package authhandler

import (
	"ptw-backend/config"
	"ptw-backend/db"
	usersstore "ptw-backend/lib/users/store"
	authutils "ptw-backend/lib/utils/auth-utils"
	initchecker "ptw-backend/lib/utils/init-checker"
	authapimodels "ptw-backend/models/api/auth"
	dbmodels "ptw-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Login(email, password string) (response authapimodels.JWTResponse, hMsg string, err error)
	RefreshToken(refreshToken string) (response authapimodels.JWTResponse, hMsg string, err error)
	Me(userID string) (me *authapimodels.MeView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithStore(usersstore.NewInstance(db.DB), config.Conf.App.CorporateDomain)
}

func NewHandlerWithStore(store usersstore.Provider, corporateDomain string) Provider {
	instance := impl{
		store:           store,
		corporateDomain: corporateDomain,
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	return instance
}

type impl struct {
	store           usersstore.Provider
	corporateDomain string
}

const wrongCredentials = "wrong email or password"

func (i impl) Login(email, password string) (response authapimodels.JWTResponse, hMsg string, err error) {
	logger := log.WithField("email", email)
	user, err := i.store.FindByEmail(email)
	if err != nil {
		return authapimodels.JWTResponse{}, "", errors.Wrap(err, "error finding user by email")
	}
	if user == nil {
		logger.Debug("user with this email not found")
		return authapimodels.JWTResponse{}, wrongCredentials, nil
	}
	if !authutils.CheckPassword(user.Password, password) {
		logger.Debug("password check failed")
		return authapimodels.JWTResponse{}, wrongCredentials, nil
	}
	if !user.IsActive {
		return authapimodels.JWTResponse{}, "user is deactivated", nil
	}
	response, err = i.issueTokens(*user)
	if err != nil {
		return authapimodels.JWTResponse{}, "", err
	}
	err = i.store.Update(user.ID, map[string]interface{}{"LastLogin": time.Now()})
	if err != nil {
		logger.
			WithError(err).
			Error("error updating last login date")
	}
	logger.WithField("user_id", user.ID).Info("user logged in")
	return response, "", nil
}

func (i impl) RefreshToken(refreshToken string) (response authapimodels.JWTResponse, hMsg string, err error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		log.WithError(err).Debug("refresh token rejected")
		return authapimodels.JWTResponse{}, "session expired, please sign in again", nil
	}
	user, err := i.store.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, "", errors.Wrap(err, "error getting user")
	}
	if user == nil || !user.IsActive {
		return authapimodels.JWTResponse{}, "session expired, please sign in again", nil
	}
	response, err = i.issueTokens(*user)
	if err != nil {
		return authapimodels.JWTResponse{}, "", err
	}
	return response, "", nil
}

func (i impl) Me(userID string) (*authapimodels.MeView, error) {
	user, err := i.store.GetByID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "error getting user")
	}
	if user == nil {
		return nil, nil
	}
	me := authapimodels.MeView{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         string(user.RoleID),
		RoleName:     user.RoleID.ToHuman(),
		DepartmentID: user.DepartmentID,
		IsExternal:   user.IsExternal(i.corporateDomain),
	}
	if user.Department != nil {
		me.DepartmentName = user.Department.Name
	}
	return &me, nil
}

func (i impl) issueTokens(user dbmodels.User) (authapimodels.JWTResponse, error) {
	token, err := authutils.GetToken(user.ID, user.GetFullName(), user.DepartmentID, user.RoleID)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "error generating jwt")
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "error generating refresh jwt")
	}
	return authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}
