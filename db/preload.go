package db

import (
	"ptw-backend/config"
	departmentstore "ptw-backend/lib/dicts/department/store"
	usersstore "ptw-backend/lib/users/store"
	authutils "ptw-backend/lib/utils/auth-utils"
	"ptw-backend/models"
	dbmodels "ptw-backend/models/db"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	fillDepartments()
	addAdmin()
}

// fillDepartments inserts the built-in departments that are not in the table yet.
func fillDepartments() {
	store := departmentstore.NewInstance(DB)
	for code, name := range models.DefaultDepartments {
		rec, err := store.GetByCode(code)
		if err != nil {
			log.WithError(err).WithField("department_code", code).Error("error preloading department")
			return
		}
		if rec != nil {
			continue
		}
		if err = store.Create(dbmodels.Department{Code: code, Name: name}); err != nil {
			log.WithError(err).WithField("department_code", code).Error("error preloading department")
			return
		}
		log.WithField("department_code", code).Info("department preloaded")
	}
}

func addAdmin() {
	if config.Conf.Admin.Email == "" {
		log.Warn("admin user not added, ADMIN_EMAIL is not set")
		return
	}
	if config.Conf.Admin.Password == "" {
		log.Warn("admin user not added, ADMIN_PASSWORD is not set")
		return
	}
	store := usersstore.NewInstance(DB)
	existedRec, err := store.FindByEmail(config.Conf.Admin.Email)
	if err != nil {
		log.WithError(err).Error("error adding admin user")
		return
	}
	if existedRec != nil {
		return
	}
	hash, err := authutils.HashPassword(config.Conf.Admin.Password)
	if err != nil {
		log.WithError(err).Error("error adding admin user")
		return
	}
	rec := dbmodels.User{
		IsActive:     true,
		RoleID:       models.RoleAdmin,
		DepartmentID: models.QHSSEDepartmentCode,
		Password:     hash,
		FirstName:    config.Conf.Admin.FirstName,
		LastName:     config.Conf.Admin.LastName,
		Email:        config.Conf.Admin.Email,
	}
	if _, err = store.Create(rec); err != nil {
		log.WithError(err).Error("error adding admin user")
		return
	}
	log.WithField("email", rec.Email).Info("admin user added")
}
