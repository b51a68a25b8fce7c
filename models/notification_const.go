package models

type NotificationEvent string

const (
	EventPermitCreated      NotificationEvent = "permit_created"
	EventPermitStatusUpdate NotificationEvent = "permit_status_update"
	EventPTWCreated         NotificationEvent = "ptw_created"
	EventPTWStatusUpdate    NotificationEvent = "ptw_status_update"
	EventPTWCompleted       NotificationEvent = "ptw_completed"
	EventPermitRevoked      NotificationEvent = "permit_revoked"
)

type NotificationState string

const (
	NotificationPending NotificationState = "PENDING"
	NotificationSent    NotificationState = "SENT"
	NotificationFailed  NotificationState = "FAILED"
)
