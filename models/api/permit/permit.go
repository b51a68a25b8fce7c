package permitapimodels

import (
	permitflow "ptw-backend/lib/permit-flow"
	"ptw-backend/models"
	apimodels "ptw-backend/models/api"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// PermitData is the work description shared by job permits and permits to work.
type PermitData struct {
	JobLocation    string   `json:"job_location"`
	SubLocation    string   `json:"sub_location"`
	JobDescription string   `json:"job_description"`
	WorkersNames   []string `json:"workers_names"`
}

func (p PermitData) Validate() error {
	if strings.TrimSpace(p.JobLocation) == "" {
		return errors.New("job location is required")
	}
	if strings.TrimSpace(p.JobDescription) == "" {
		return errors.New("job description is required")
	}
	if len(p.WorkersNames) == 0 {
		return errors.New("at least one worker is required")
	}
	for _, name := range p.WorkersNames {
		if strings.TrimSpace(name) == "" {
			return errors.New("worker name must not be empty")
		}
	}
	return nil
}

type StageView struct {
	Role     models.UserRole    `json:"role"`
	RoleName string             `json:"role_name"`
	Status   models.StageStatus `json:"status"`
	UserID   string             `json:"user_id,omitempty"`
	UserName string             `json:"user_name,omitempty"`
	Date     *time.Time         `json:"date,omitempty"`
	Comments string             `json:"comments,omitempty"`
}

func StagesConvert(a models.PermitApprovals) []StageView {
	return []StageView{
		{
			Role:     models.RoleIssuer,
			RoleName: models.RoleIssuer.ToHuman(),
			Status:   a.IssuerStatus,
			UserID:   a.IssuerID,
			UserName: a.IssuerName,
			Date:     a.IssuerDate,
			Comments: a.IssuerComments,
		},
		{
			Role:     models.RoleHOD,
			RoleName: models.RoleHOD.ToHuman(),
			Status:   a.HODStatus,
			UserID:   a.HODID,
			UserName: a.HODName,
			Date:     a.HODDate,
			Comments: a.HODComments,
		},
		{
			Role:     models.RoleQHSSE,
			RoleName: models.RoleQHSSE.ToHuman(),
			Status:   a.QHSSEStatus,
			UserID:   a.QHSSEID,
			UserName: a.QHSSEName,
			Date:     a.QHSSEDate,
			Comments: a.QHSSEComments,
		},
	}
}

type RevocationView struct {
	InitiatedBy    string              `json:"initiated_by"`
	InitiatedByID  string              `json:"initiated_by_id"`
	InitiatorRole  models.UserRole     `json:"initiator_role"`
	Date           *time.Time          `json:"date,omitempty"`
	Reason         string              `json:"reason"`
	QHSSEStatus    models.StageStatus  `json:"qhsse_status"`
	ReviewedBy     string              `json:"reviewed_by,omitempty"`
	ReviewedDate   *time.Time          `json:"reviewed_date,omitempty"`
	ReviewComments string              `json:"review_comments,omitempty"`
	QHSSEInitiated bool                `json:"qhsse_initiated"`
	PreviousStatus models.PermitStatus `json:"previous_status,omitempty"`
}

// RevocationConvert returns nil when no revocation was ever requested.
func RevocationConvert(r models.PermitRevocation) *RevocationView {
	if r.QHSSERevocationStatus == "" {
		return nil
	}
	return &RevocationView{
		InitiatedBy:    r.RevocationInitiatedBy,
		InitiatedByID:  r.RevocationInitiatedByID,
		InitiatorRole:  r.InitiatorRole,
		Date:           r.RevocationDate,
		Reason:         r.RevocationReason,
		QHSSEStatus:    r.QHSSERevocationStatus,
		ReviewedBy:     r.RevocationApprovedBy,
		ReviewedDate:   r.RevocationApprovedDate,
		ReviewComments: r.RevocationComments,
		QHSSEInitiated: r.InitiatorRole == models.RoleQHSSE,
		PreviousStatus: r.PreRevocationStatus,
	}
}

// Actions tells the client which controls the signed-in user may use.
type Actions struct {
	CanAct              bool `json:"can_act"`
	CanRevoke           bool `json:"can_revoke"`
	CanReviewRevocation bool `json:"can_review_revocation"`
	CanComplete         bool `json:"can_complete"`
	CanCreatePTW        bool `json:"can_create_ptw"`
}

type PermitFilter struct {
	Status     models.PermitStatus `json:"status"`      // Pending / Approved / Rejected / Revocation Pending / Revoked
	AssignedTo models.UserRole     `json:"assigned_to"` // ISS / HOD / QA
	Department string              `json:"department"`  // display name
	Search     string              `json:"search"`      // permit number, location or description
	OnlyMine   bool                `json:"only_mine"`   // created by the caller
}

type JobPermitListRequest struct {
	PermitFilter
	apimodels.Pagination
}

func (r JobPermitListRequest) Validate() error {
	return r.PermitFilter.Validate()
}

func (f PermitFilter) Validate() error {
	if f.AssignedTo != "" && !permitflow.IsAssignableRole(f.AssignedTo) {
		return errors.Errorf("role %q never holds a pending stage", f.AssignedTo)
	}
	return nil
}
