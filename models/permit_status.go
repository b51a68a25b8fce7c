package models

// Stage statuses of the ISS -> HOD -> QA approval chain.
type StageStatus string

const (
	StagePending  StageStatus = "Pending"
	StageApproved StageStatus = "Approved"
	StageRejected StageStatus = "Rejected"
)

// PermitStatus is the overall status of a job permit or a permit to work.
type PermitStatus string

const (
	PermitPending           PermitStatus = "Pending"
	PermitApproved          PermitStatus = "Approved"
	PermitRejected          PermitStatus = "Rejected"
	PermitRevocationPending PermitStatus = "Revocation Pending"
	PermitRevoked           PermitStatus = "Revoked"
)

func (s PermitStatus) IsTerminal() bool {
	return s == PermitRejected || s == PermitRevoked
}

type CompletionStatus string

const (
	CompletionNone        CompletionStatus = ""
	CompletionInProgress  CompletionStatus = "In Progress"
	CompletionPending     CompletionStatus = "Pending Completion"
	CompletionJobComplete CompletionStatus = "Job Completed"
)

type IssuerCompletionStatus string

const (
	IssuerCompletionNone       IssuerCompletionStatus = ""
	IssuerCompletionInProgress IssuerCompletionStatus = "In Progress"
	IssuerCompletionCompleted  IssuerCompletionStatus = "Completed"
)

// PermitKind tells a job permit from a permit to work in history and notifications.
type PermitKind string

const (
	KindJobPermit    PermitKind = "JOB_PERMIT"
	KindPermitToWork PermitKind = "PTW"
)

func (k PermitKind) ToHuman() string {
	if k == KindPermitToWork {
		return "Permit to Work"
	}
	return "Job Permit"
}
