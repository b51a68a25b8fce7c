package departmentprovider

import (
	"ptw-backend/db"
	departmentstore "ptw-backend/lib/dicts/department/store"
	initchecker "ptw-backend/lib/utils/init-checker"
	"ptw-backend/models"
	dictapimodels "ptw-backend/models/api/dict"
	dbmodels "ptw-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(request dictapimodels.DepartmentData) (hMsg string, err error)
	Update(code string, request dictapimodels.DepartmentData) (hMsg string, err error)
	Get(code string) (item *dictapimodels.DepartmentView, err error)
	List() (list []dictapimodels.DepartmentView, err error)
	Delete(code string) (hMsg string, err error)
	// DepartmentMap returns department code -> display name.
	DepartmentMap() (map[string]string, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithStore(departmentstore.NewInstance(db.DB))
}

func NewHandlerWithStore(store departmentstore.Provider) Provider {
	instance := impl{
		store: store,
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	return instance
}

type impl struct {
	store departmentstore.Provider
}

func (i impl) Create(request dictapimodels.DepartmentData) (hMsg string, err error) {
	code := strings.ToUpper(strings.TrimSpace(request.Code))
	logger := log.WithField("department_code", code)
	existed, err := i.store.GetByCode(code)
	if err != nil {
		return "", errors.Wrap(err, "error getting department")
	}
	if existed != nil {
		return "department with this code already exists", nil
	}
	rec := dbmodels.Department{
		Code: code,
		Name: strings.TrimSpace(request.Name),
	}
	if err = i.store.Create(rec); err != nil {
		return "", errors.Wrap(err, "error creating department")
	}
	logger.WithField("department_name", rec.Name).Info("department created")
	return "", nil
}

func (i impl) Update(code string, request dictapimodels.DepartmentData) (hMsg string, err error) {
	logger := log.WithField("department_code", code)
	rec, err := i.store.GetByCode(code)
	if err != nil {
		return "", errors.Wrap(err, "error getting department")
	}
	if rec == nil {
		return "department not found", nil
	}
	if !strings.EqualFold(request.Code, code) {
		return "department code cannot be changed", nil
	}
	updMap := map[string]interface{}{
		"name": strings.TrimSpace(request.Name),
	}
	if err = i.store.Update(code, updMap); err != nil {
		return "", errors.Wrap(err, "error updating department")
	}
	logger.Info("department updated")
	return "", nil
}

func (i impl) Get(code string) (*dictapimodels.DepartmentView, error) {
	rec, err := i.store.GetByCode(code)
	if err != nil {
		return nil, errors.Wrap(err, "error getting department")
	}
	if rec == nil {
		return nil, nil
	}
	view := dictapimodels.DepartmentConvert(*rec)
	return &view, nil
}

func (i impl) List() (list []dictapimodels.DepartmentView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "error getting department list")
	}
	list = make([]dictapimodels.DepartmentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.DepartmentConvert(rec))
	}
	return list, nil
}

func (i impl) Delete(code string) (hMsg string, err error) {
	if _, builtIn := models.DefaultDepartments[code]; builtIn {
		return "built-in department cannot be deleted", nil
	}
	if err = i.store.Delete(code); err != nil {
		return "", errors.Wrap(err, "error deleting department")
	}
	log.WithField("department_code", code).Info("department deleted")
	return "", nil
}

func (i impl) DepartmentMap() (map[string]string, error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "error getting department list")
	}
	result := make(map[string]string, len(recList)+len(models.DefaultDepartments))
	for code, name := range models.DefaultDepartments {
		result[code] = name
	}
	for _, rec := range recList {
		result[rec.Code] = rec.Name
	}
	return result, nil
}
