package permitflow

import (
	"ptw-backend/models"
	"strings"
	"time"
)

type Decision struct {
	Approve  bool
	Comments string
	At       time.Time
}

func checkActionable(p Permit) error {
	if p.Approvals.Status == models.PermitRevoked {
		return NewError(CodeAlreadyRevoked, "permit is already revoked")
	}
	if p.IsLocked() {
		return NewError(CodeInvalidState, "permit is locked by a pending revocation")
	}
	if p.Approvals.Status != models.PermitPending || p.Approvals.AssignedTo == "" {
		return NewError(CodeInvalidState, "permit is not pending approval (status: %v)", p.Approvals.Status)
	}
	return nil
}

// CanAct reports whether the actor is the approver the permit currently waits for.
func CanAct(actor Actor, p Permit) bool {
	if checkActionable(p) != nil {
		return false
	}
	return actor.Role == p.Approvals.AssignedTo
}

// ApplyDecision records the decision of the assigned stage and moves the permit forward.
func ApplyDecision(p Permit, actor Actor, d Decision) (Permit, error) {
	if err := checkActionable(p); err != nil {
		return p, err
	}
	stage := p.Approvals.AssignedTo
	if actor.Role != stage {
		return p, NewError(CodeNotAssigned, "permit is awaiting %v approval", stage.ToHuman())
	}
	comments := strings.TrimSpace(d.Comments)
	if !d.Approve && comments == "" {
		return p, NewError(CodeValidation, "Comments are required to reject")
	}

	res := p.clone()
	status := models.StageRejected
	if d.Approve {
		status = models.StageApproved
	}
	setStage(&res.Approvals, stage, status, actor, comments, timePtr(d.At))

	res.Approvals.Status = DeriveStatus(res.Approvals.IssuerStatus, res.Approvals.HODStatus, res.Approvals.QHSSEStatus)
	switch res.Approvals.Status {
	case models.PermitPending:
		res.Approvals.AssignedTo = NextStage(stage)
	case models.PermitApproved:
		res.Approvals.AssignedTo = ""
		if res.Completion != nil {
			res.Completion.CompletionStatus = models.CompletionInProgress
			res.Completion.IssuerCompletionStatus = models.IssuerCompletionInProgress
		}
	default:
		res.Approvals.AssignedTo = ""
	}
	return res, nil
}

func setStage(a *models.PermitApprovals, stage models.UserRole, status models.StageStatus, actor Actor, comments string, at *time.Time) {
	switch stage {
	case models.RoleIssuer:
		a.IssuerStatus = status
		a.IssuerID = actor.UserID
		a.IssuerName = actor.Name
		a.IssuerDate = at
		a.IssuerComments = comments
	case models.RoleHOD:
		a.HODStatus = status
		a.HODID = actor.UserID
		a.HODName = actor.Name
		a.HODDate = at
		a.HODComments = comments
	case models.RoleQHSSE:
		a.QHSSEStatus = status
		a.QHSSEID = actor.UserID
		a.QHSSEName = actor.Name
		a.QHSSEDate = at
		a.QHSSEComments = comments
	}
}
