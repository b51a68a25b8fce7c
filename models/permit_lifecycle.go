package models

import "time"

// PermitApprovals is the ISS -> HOD -> QA approval triple shared by job permits and permits to work.
type PermitApprovals struct {
	Status         PermitStatus `gorm:"type:varchar(30);index"`
	AssignedTo     UserRole     `gorm:"type:varchar(10);index"`
	IssuerStatus   StageStatus  `gorm:"type:varchar(20)"`
	IssuerID       string       `gorm:"type:varchar(36)"`
	IssuerName     string       `gorm:"type:varchar(255)"`
	IssuerDate     *time.Time
	IssuerComments string
	HODStatus      StageStatus `gorm:"type:varchar(20)"`
	HODID          string      `gorm:"type:varchar(36)"`
	HODName        string      `gorm:"type:varchar(255)"`
	HODDate        *time.Time
	HODComments    string
	QHSSEStatus    StageStatus `gorm:"type:varchar(20)"`
	QHSSEID        string      `gorm:"type:varchar(36)"`
	QHSSEName      string      `gorm:"type:varchar(255)"`
	QHSSEDate      *time.Time
	QHSSEComments  string
}

// PermitRevocation holds the revocation request and its QHSSE review.
type PermitRevocation struct {
	RevocationInitiatedBy   string   `gorm:"type:varchar(255)"`
	RevocationInitiatedByID string   `gorm:"type:varchar(36)"`
	InitiatorRole           UserRole `gorm:"type:varchar(10)"`
	RevocationDate          *time.Time
	RevocationReason        string
	RevocationApprovedBy    string `gorm:"type:varchar(255)"`
	RevocationApprovedByID  string `gorm:"type:varchar(36)"`
	RevocationApprovedDate  *time.Time
	RevocationComments      string
	QHSSERevocationStatus   StageStatus  `gorm:"type:varchar(20)"`
	PreRevocationStatus     PermitStatus `gorm:"type:varchar(30)"`
	PreRevocationAssignedTo UserRole     `gorm:"type:varchar(10)"`
}

// PermitCompletion is the two step completion of a permit to work: issuer first, QHSSE last.
type PermitCompletion struct {
	CompletionStatus        CompletionStatus       `gorm:"type:varchar(30);index"`
	IssuerCompletionStatus  IssuerCompletionStatus `gorm:"type:varchar(20)"`
	IssuerCompletionID      string                 `gorm:"type:varchar(36)"`
	IssuerCompletionName    string                 `gorm:"type:varchar(255)"`
	IssuerCompletionDate    *time.Time
	QHSSECompletionStatus   IssuerCompletionStatus `gorm:"type:varchar(20)"`
	QHSSECompletionID       string                 `gorm:"type:varchar(36)"`
	QHSSECompletionName     string                 `gorm:"type:varchar(255)"`
	QHSSECompletionDate     *time.Time
	QHSSECompletionComments string
}
