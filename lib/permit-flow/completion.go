package permitflow

import (
	"ptw-backend/models"
	"strings"
	"time"
)

type CompletionStep string

const (
	CompletionStepNone   CompletionStep = ""
	CompletionStepIssuer CompletionStep = "ISSUER"
	CompletionStepQHSSE  CompletionStep = "QHSSE"
)

// Role returns who performs the step.
func (s CompletionStep) Role() models.UserRole {
	switch s {
	case CompletionStepIssuer:
		return models.RoleIssuer
	case CompletionStepQHSSE:
		return models.RoleQHSSE
	}
	return ""
}

// CompletionStage returns the completion step the permit to work waits for.
func CompletionStage(p Permit) CompletionStep {
	if p.Completion == nil || p.IsLocked() || p.Approvals.Status != models.PermitApproved {
		return CompletionStepNone
	}
	switch p.Completion.CompletionStatus {
	case models.CompletionInProgress:
		if p.Completion.IssuerCompletionStatus != models.IssuerCompletionCompleted {
			return CompletionStepIssuer
		}
	case models.CompletionPending:
		return CompletionStepQHSSE
	}
	return CompletionStepNone
}

func CanComplete(actor Actor, p Permit) bool {
	step := CompletionStage(p)
	return step != CompletionStepNone && actor.Role == step.Role()
}

func checkCompletable(p Permit, step CompletionStep, actor Actor) error {
	if p.Completion == nil {
		return NewError(CodeInvalidState, "only a permit to work can be completed")
	}
	if p.Approvals.Status == models.PermitRevoked {
		return NewError(CodeAlreadyRevoked, "permit is already revoked")
	}
	if p.IsLocked() {
		return NewError(CodeInvalidState, "permit is locked by a pending revocation")
	}
	if p.Approvals.Status != models.PermitApproved {
		return NewError(CodeInvalidState, "permit to work must be approved before completion")
	}
	if p.Completion.CompletionStatus == models.CompletionJobComplete {
		return NewError(CodeInvalidState, "job is already completed")
	}
	if CompletionStage(p) != step {
		return NewError(CodeInvalidState, "permit to work is not awaiting %v completion", step.Role().ToHuman())
	}
	if actor.Role != step.Role() {
		return NewError(CodeNotAssigned, "completion is awaiting %v", step.Role().ToHuman())
	}
	return nil
}

// ApplyIssuerCompletion marks the issuer's part done and hands the permit to QHSSE.
func ApplyIssuerCompletion(p Permit, actor Actor, at time.Time) (Permit, error) {
	if err := checkCompletable(p, CompletionStepIssuer, actor); err != nil {
		return p, err
	}
	res := p.clone()
	res.Completion.IssuerCompletionStatus = models.IssuerCompletionCompleted
	res.Completion.IssuerCompletionID = actor.UserID
	res.Completion.IssuerCompletionName = actor.Name
	res.Completion.IssuerCompletionDate = timePtr(at)
	res.Completion.CompletionStatus = models.CompletionPending
	return res, nil
}

// ApplyFinalCompletion closes the job. Remarks are mandatory.
func ApplyFinalCompletion(p Permit, actor Actor, remarks string, at time.Time) (Permit, error) {
	if err := checkCompletable(p, CompletionStepQHSSE, actor); err != nil {
		return p, err
	}
	remarks = strings.TrimSpace(remarks)
	if remarks == "" {
		return p, NewError(CodeValidation, "Remarks are required to complete the job")
	}
	res := p.clone()
	res.Completion.QHSSECompletionStatus = models.IssuerCompletionCompleted
	res.Completion.QHSSECompletionID = actor.UserID
	res.Completion.QHSSECompletionName = actor.Name
	res.Completion.QHSSECompletionDate = timePtr(at)
	res.Completion.QHSSECompletionComments = remarks
	res.Completion.CompletionStatus = models.CompletionJobComplete
	return res, nil
}

// ApplyCompletion runs whichever completion step is active.
func ApplyCompletion(p Permit, actor Actor, remarks string, at time.Time) (Permit, CompletionStep, error) {
	step := CompletionStage(p)
	switch step {
	case CompletionStepIssuer:
		res, err := ApplyIssuerCompletion(p, actor, at)
		return res, step, err
	case CompletionStepQHSSE:
		res, err := ApplyFinalCompletion(p, actor, remarks, at)
		return res, step, err
	}
	// reuse the checks to get a precise error
	return p, step, checkCompletable(p, CompletionStepIssuer, actor)
}
