package permitflow

import (
	"ptw-backend/models"
	"time"
)

// Actor is the signed-in user performing a transition.
type Actor struct {
	UserID     string
	Name       string
	Role       models.UserRole
	Department string
}

// Permit is the lifecycle view of a job permit (Completion == nil) or a permit to work.
type Permit struct {
	Approvals  models.PermitApprovals
	Revocation models.PermitRevocation
	Completion *models.PermitCompletion
}

func (p Permit) clone() Permit {
	res := p
	if p.Completion != nil {
		completion := *p.Completion
		res.Completion = &completion
	}
	return res
}

func (p Permit) IsPermitToWork() bool {
	return p.Completion != nil
}

// IsLocked reports whether a revocation blocks normal approval and completion.
func (p Permit) IsLocked() bool {
	if p.Revocation.RevocationInitiatedBy != "" {
		return true
	}
	return p.Approvals.Status == models.PermitRevocationPending || p.Approvals.Status == models.PermitRevoked
}

// NewApprovals is the initial state of every new permit: all stages pending, issuer first.
func NewApprovals() models.PermitApprovals {
	return models.PermitApprovals{
		Status:       models.PermitPending,
		AssignedTo:   models.RoleIssuer,
		IssuerStatus: models.StagePending,
		HODStatus:    models.StagePending,
		QHSSEStatus:  models.StagePending,
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return &t
}
