package permitflow

import (
	"ptw-backend/models"
	"strings"
	"time"
	"unicode/utf8"
)

const MinRevocationCommentLength = 10

func canInitiateRole(role models.UserRole) bool {
	return role == models.RoleIssuer || role == models.RoleHOD || role == models.RoleQHSSE
}

func checkRevocable(p Permit) error {
	if p.Approvals.Status == models.PermitRevoked {
		return NewError(CodeAlreadyRevoked, "permit is already revoked")
	}
	if p.IsLocked() {
		return NewError(CodeInvalidState, "revocation is already in progress")
	}
	if p.Approvals.Status != models.PermitPending && p.Approvals.Status != models.PermitApproved {
		return NewError(CodeInvalidState, "permit cannot be revoked in status %v", p.Approvals.Status)
	}
	if p.Completion != nil && p.Completion.CompletionStatus == models.CompletionJobComplete {
		return NewError(CodeInvalidState, "completed job cannot be revoked")
	}
	return nil
}

func CanInitiateRevocation(actor Actor, p Permit) bool {
	return canInitiateRole(actor.Role) && checkRevocable(p) == nil
}

// InitiateRevocation opens a revocation. A QHSSE initiator revokes at once,
// anyone else parks the permit in Revocation Pending for QHSSE review.
func InitiateRevocation(p Permit, actor Actor, reason string, at time.Time) (Permit, error) {
	if err := checkRevocable(p); err != nil {
		return p, err
	}
	if !canInitiateRole(actor.Role) {
		return p, NewError(CodeForbidden, "role %v cannot revoke permits", actor.Role.ToHuman())
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return p, NewError(CodeValidation, "Revocation reason is required")
	}

	res := p.clone()
	date := timePtr(at)
	rev := &res.Revocation
	rev.RevocationInitiatedBy = actor.Name
	rev.RevocationInitiatedByID = actor.UserID
	rev.InitiatorRole = actor.Role
	rev.RevocationDate = date
	rev.RevocationReason = reason
	rev.PreRevocationStatus = p.Approvals.Status
	rev.PreRevocationAssignedTo = p.Approvals.AssignedTo

	if actor.Role == models.RoleQHSSE {
		rev.QHSSERevocationStatus = models.StageApproved
		rev.RevocationApprovedBy = actor.Name
		rev.RevocationApprovedByID = actor.UserID
		rev.RevocationApprovedDate = date
		rev.RevocationComments = reason
		res.Approvals.Status = models.PermitRevoked
		res.Approvals.AssignedTo = ""
		return res, nil
	}
	rev.QHSSERevocationStatus = models.StagePending
	res.Approvals.Status = models.PermitRevocationPending
	res.Approvals.AssignedTo = models.RoleQHSSE
	return res, nil
}

func IsQHSSEInitiated(p Permit) bool {
	return p.Revocation.InitiatorRole == models.RoleQHSSE
}

func CanReviewRevocation(actor Actor, p Permit) bool {
	return p.Approvals.Status == models.PermitRevocationPending &&
		!IsQHSSEInitiated(p) &&
		actor.Role == models.RoleQHSSE
}

// ReviewRevocation is the QHSSE decision on a pending revocation. Rejecting it
// restores the status the permit had before and unlocks it.
func ReviewRevocation(p Permit, actor Actor, approve bool, comments string, at time.Time) (Permit, error) {
	if p.Approvals.Status == models.PermitRevoked {
		return p, NewError(CodeAlreadyRevoked, "permit is already revoked")
	}
	if p.Approvals.Status != models.PermitRevocationPending || IsQHSSEInitiated(p) {
		return p, NewError(CodeInvalidState, "permit has no revocation awaiting review")
	}
	if actor.Role != models.RoleQHSSE {
		return p, NewError(CodeNotAssigned, "revocation is awaiting %v review", models.RoleQHSSE.ToHuman())
	}
	comments = strings.TrimSpace(comments)
	if utf8.RuneCountInString(comments) < MinRevocationCommentLength {
		return p, NewError(CodeValidation, "Comments must be at least %d characters", MinRevocationCommentLength)
	}

	res := p.clone()
	date := timePtr(at)
	rev := &res.Revocation
	rev.RevocationApprovedBy = actor.Name
	rev.RevocationApprovedByID = actor.UserID
	rev.RevocationApprovedDate = date
	rev.RevocationComments = comments
	if approve {
		rev.QHSSERevocationStatus = models.StageApproved
		res.Approvals.Status = models.PermitRevoked
		res.Approvals.AssignedTo = ""
		return res, nil
	}

	rev.QHSSERevocationStatus = models.StageRejected
	res.Approvals.Status = rev.PreRevocationStatus
	res.Approvals.AssignedTo = rev.PreRevocationAssignedTo
	if res.Approvals.Status == "" {
		res.Approvals.Status = DeriveStatus(res.Approvals.IssuerStatus, res.Approvals.HODStatus, res.Approvals.QHSSEStatus)
	}
	rev.RevocationInitiatedBy = ""
	rev.RevocationInitiatedByID = ""
	rev.InitiatorRole = ""
	rev.RevocationDate = nil
	rev.PreRevocationStatus = ""
	rev.PreRevocationAssignedTo = ""
	return res, nil
}
