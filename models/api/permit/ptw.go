package permitapimodels

import (
	"ptw-backend/models"
	apimodels "ptw-backend/models/api"
	dbmodels "ptw-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

type PTWData struct {
	PermitData
	JobPermitID string         `json:"job_permit_id"`
	EntryDate   apimodels.Date `json:"entry_date" swaggertype:"string" example:"2024-03-01"`
	ExitDate    apimodels.Date `json:"exit_date" swaggertype:"string" example:"2024-03-03"`
}

func (r PTWData) Validate() error {
	if r.JobPermitID == "" {
		return errors.New("job permit is required")
	}
	if r.EntryDate.IsZero() || r.ExitDate.IsZero() {
		return errors.New("Entry and exit dates are required")
	}
	return r.PermitData.Validate()
}

// PTWFilter is the list filter of permits to work.
type PTWFilter struct {
	PermitFilter
	JobPermitID      string                  `json:"job_permit_id"`
	CompletionStatus models.CompletionStatus `json:"completion_status"` // In Progress / Pending Completion / Job Completed
}

type PTWListRequest struct {
	PTWFilter
	apimodels.Pagination
}

func (r PTWListRequest) Validate() error {
	return r.PTWFilter.Validate()
}

type CompletionView struct {
	Status       models.CompletionStatus       `json:"status"`
	Step         string                        `json:"step,omitempty"` // ISSUER / QHSSE while the job is open
	IssuerStatus models.IssuerCompletionStatus `json:"issuer_status"`
	IssuerName   string                        `json:"issuer_name,omitempty"`
	IssuerDate   *time.Time                    `json:"issuer_date,omitempty"`
	QHSSEStatus  models.IssuerCompletionStatus `json:"qhsse_status"`
	QHSSEName    string                        `json:"qhsse_name,omitempty"`
	QHSSEDate    *time.Time                    `json:"qhsse_date,omitempty"`
	QHSSERemarks string                        `json:"qhsse_remarks,omitempty"`
}

type PTWView struct {
	PTWData
	Actions
	ID              string              `json:"id"`
	PermitNumber    string              `json:"permit_number"`
	JobPermitNumber string              `json:"job_permit_number"`
	Department      string              `json:"department"`
	WorkDuration    int                 `json:"work_duration"`
	CreationDate    time.Time           `json:"creation_date"`
	CreatorID       string              `json:"creator_id"`
	CreatorName     string              `json:"creator_name"`
	Status          models.PermitStatus `json:"status"`
	AssignedTo      models.UserRole     `json:"assigned_to"`
	Stages          []StageView         `json:"stages"`
	Completion      CompletionView      `json:"completion"`
	Revocation      *RevocationView     `json:"revocation,omitempty"`
}

func PTWConvert(rec dbmodels.PermitToWork) PTWView {
	result := PTWView{
		PTWData: PTWData{
			PermitData: PermitData{
				JobLocation:    rec.JobLocation,
				SubLocation:    rec.SubLocation,
				JobDescription: rec.JobDescription,
				WorkersNames:   rec.WorkersNames,
			},
			JobPermitID: rec.JobPermitID,
			EntryDate:   apimodels.NewDate(rec.EntryDate),
			ExitDate:    apimodels.NewDate(rec.ExitDate),
		},
		ID:           rec.ID,
		PermitNumber: rec.PermitNumber,
		Department:   rec.Department,
		WorkDuration: rec.WorkDuration,
		CreationDate: rec.CreatedAt,
		CreatorID:    rec.CreatorID,
		CreatorName:  rec.CreatorName,
		Status:       rec.Status,
		AssignedTo:   rec.AssignedTo,
		Stages:       StagesConvert(rec.PermitApprovals),
		Completion: CompletionView{
			Status:       rec.CompletionStatus,
			IssuerStatus: rec.IssuerCompletionStatus,
			IssuerName:   rec.IssuerCompletionName,
			IssuerDate:   rec.IssuerCompletionDate,
			QHSSEStatus:  rec.QHSSECompletionStatus,
			QHSSEName:    rec.QHSSECompletionName,
			QHSSEDate:    rec.QHSSECompletionDate,
			QHSSERemarks: rec.QHSSECompletionComments,
		},
		Revocation: RevocationConvert(rec.PermitRevocation),
	}
	if rec.JobPermit != nil {
		result.JobPermitNumber = rec.JobPermit.PermitNumber
	}
	return result
}
