package models

type PermitAction string

const (
	ActionCreated             PermitAction = "CREATED"
	ActionApproved            PermitAction = "APPROVED"
	ActionRejected            PermitAction = "REJECTED"
	ActionIssuerCompleted     PermitAction = "ISSUER_COMPLETED"
	ActionJobCompleted        PermitAction = "JOB_COMPLETED"
	ActionRevocationInitiated PermitAction = "REVOCATION_INITIATED"
	ActionRevocationApproved  PermitAction = "REVOCATION_APPROVED"
	ActionRevocationRejected  PermitAction = "REVOCATION_REJECTED"
	ActionAttachmentAdded     PermitAction = "ATTACHMENT_ADDED"
)

var actionHumanName = map[PermitAction]string{
	ActionCreated:             "Created",
	ActionApproved:            "Approved",
	ActionRejected:            "Rejected",
	ActionIssuerCompleted:     "Work marked as done by issuer",
	ActionJobCompleted:        "Job completed",
	ActionRevocationInitiated: "Revocation initiated",
	ActionRevocationApproved:  "Revocation approved",
	ActionRevocationRejected:  "Revocation rejected",
	ActionAttachmentAdded:     "Attachment added",
}

func (a PermitAction) ToHuman() string {
	if human, ok := actionHumanName[a]; ok {
		return human
	}
	return string(a)
}
