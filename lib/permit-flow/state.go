package permitflow

import "ptw-backend/models"

type StateKind string

const (
	StatePending           StateKind = "PENDING"
	StateApproved          StateKind = "APPROVED"
	StateRejected          StateKind = "REJECTED"
	StateRevocationPending StateKind = "REVOCATION_PENDING"
	StateRevoked           StateKind = "REVOKED"
)

// State is the tagged lifecycle state of a permit.
// Stage is set for Pending (awaiting stage) and Rejected (rejecting stage).
// Reason carries the rejection comments or the revocation reason.
type State struct {
	Kind   StateKind
	Stage  models.UserRole
	Reason string
}

var stageOrder = []models.UserRole{models.RoleIssuer, models.RoleHOD, models.RoleQHSSE}

// NextStage returns the stage after the given one, or "" after QA.
func NextStage(stage models.UserRole) models.UserRole {
	for idx, item := range stageOrder {
		if item == stage && idx+1 < len(stageOrder) {
			return stageOrder[idx+1]
		}
	}
	return ""
}

func IsStage(role models.UserRole) bool {
	for _, item := range stageOrder {
		if item == role {
			return true
		}
	}
	return false
}

// IsAssignableRole reports whether a role can ever hold AssignedTo. Receivers and administrators never do.
func IsAssignableRole(role models.UserRole) bool {
	return IsStage(role)
}

// SelectableUserRoles lists the roles an administrator may give to a user. ADMIN is offered only
// to a user that already holds it.
func SelectableUserRoles(current models.UserRole) []models.UserRole {
	result := []models.UserRole{models.RoleReceiver}
	result = append(result, stageOrder...)
	if current == models.RoleAdmin {
		result = append(result, models.RoleAdmin)
	}
	return result
}

// DeriveStatus computes the overall approval status from the three stage statuses.
func DeriveStatus(issuer, hod, qa models.StageStatus) models.PermitStatus {
	statuses := []models.StageStatus{issuer, hod, qa}
	for _, status := range statuses {
		if status == models.StageRejected {
			return models.PermitRejected
		}
	}
	for _, status := range statuses {
		if status != models.StageApproved {
			return models.PermitPending
		}
	}
	return models.PermitApproved
}

func stageStatus(a models.PermitApprovals, stage models.UserRole) models.StageStatus {
	switch stage {
	case models.RoleIssuer:
		return a.IssuerStatus
	case models.RoleHOD:
		return a.HODStatus
	case models.RoleQHSSE:
		return a.QHSSEStatus
	}
	return ""
}

func stageComments(a models.PermitApprovals, stage models.UserRole) string {
	switch stage {
	case models.RoleIssuer:
		return a.IssuerComments
	case models.RoleHOD:
		return a.HODComments
	case models.RoleQHSSE:
		return a.QHSSEComments
	}
	return ""
}

// Derive maps the stored status fields of a permit onto its tagged state.
func Derive(p Permit) State {
	switch p.Approvals.Status {
	case models.PermitRevoked:
		return State{Kind: StateRevoked, Reason: p.Revocation.RevocationReason}
	case models.PermitRevocationPending:
		return State{Kind: StateRevocationPending, Reason: p.Revocation.RevocationReason}
	}
	for _, stage := range stageOrder {
		if stageStatus(p.Approvals, stage) == models.StageRejected {
			return State{Kind: StateRejected, Stage: stage, Reason: stageComments(p.Approvals, stage)}
		}
	}
	if DeriveStatus(p.Approvals.IssuerStatus, p.Approvals.HODStatus, p.Approvals.QHSSEStatus) == models.PermitApproved {
		return State{Kind: StateApproved}
	}
	for _, stage := range stageOrder {
		if stageStatus(p.Approvals, stage) != models.StageApproved {
			return State{Kind: StatePending, Stage: stage}
		}
	}
	return State{Kind: StatePending, Stage: p.Approvals.AssignedTo}
}
