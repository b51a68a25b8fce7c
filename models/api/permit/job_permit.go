package permitapimodels

import (
	"ptw-backend/models"
	dbmodels "ptw-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type JobPermitData struct {
	PermitData
	DepartmentCode string `json:"department_code"` // ASM, OPS, IT, QHSSE ...
}

func (r JobPermitData) Validate() error {
	if strings.TrimSpace(r.DepartmentCode) == "" {
		return errors.New("department is required")
	}
	return r.PermitData.Validate()
}

type JobPermitView struct {
	JobPermitData
	Actions
	ID           string              `json:"id"`
	PermitNumber string              `json:"permit_number"`
	Department   string              `json:"department"`
	CreationDate time.Time           `json:"creation_date"`
	CreatorID    string              `json:"creator_id"`
	CreatorName  string              `json:"creator_name"`
	Status       models.PermitStatus `json:"status"`
	AssignedTo   models.UserRole     `json:"assigned_to"`
	Stages       []StageView         `json:"stages"`
	Revocation   *RevocationView     `json:"revocation,omitempty"`
	PTWCount     int                 `json:"ptw_count"`
}

func JobPermitConvert(rec dbmodels.JobPermit) JobPermitView {
	return JobPermitView{
		JobPermitData: JobPermitData{
			PermitData: PermitData{
				JobLocation:    rec.JobLocation,
				SubLocation:    rec.SubLocation,
				JobDescription: rec.JobDescription,
				WorkersNames:   rec.WorkersNames,
			},
			DepartmentCode: rec.DepartmentCode,
		},
		ID:           rec.ID,
		PermitNumber: rec.PermitNumber,
		Department:   rec.Department,
		CreationDate: rec.CreatedAt,
		CreatorID:    rec.CreatorID,
		CreatorName:  rec.CreatorName,
		Status:       rec.Status,
		AssignedTo:   rec.AssignedTo,
		Stages:       StagesConvert(rec.PermitApprovals),
		Revocation:   RevocationConvert(rec.PermitRevocation),
		PTWCount:     len(rec.PermitsToWork),
	}
}
