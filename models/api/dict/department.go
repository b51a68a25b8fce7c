package dictapimodels

import (
	dbmodels "ptw-backend/models/db"
	"strings"

	"github.com/pkg/errors"
)

type DepartmentData struct {
	Code string `json:"code"` // short code, e.g. ASM
	Name string `json:"name"` // display name, e.g. Asset Maintenance
}

type DepartmentView struct {
	DepartmentData
}

func (c DepartmentData) Validate() error {
	if strings.TrimSpace(c.Code) == "" {
		return errors.New("department code is required")
	}
	if len(c.Code) > 20 {
		return errors.New("department code is too long")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("department name is required")
	}
	return nil
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	return DepartmentView{
		DepartmentData: DepartmentData{
			Code: rec.Code,
			Name: rec.Name,
		},
	}
}
