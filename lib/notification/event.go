package notification

import (
	"time"

	"ptw-backend/models"
)

// Event is a finalized permit transition handed to the notifier.
type Event struct {
	Name           models.NotificationEvent
	Kind           models.PermitKind
	PermitID       string
	PermitNumber   string
	Status         models.PermitStatus
	Completion     models.CompletionStatus
	NextRole       models.UserRole // role whose action is pending, empty when nothing is
	DepartmentCode string
	Department     string
	Comments       string
	ActorName      string
	CreatorID      string
	ApproverIDs    []string
	At             time.Time
}

// IsTerminal reports whether the permit has nothing left to act on.
func (e Event) IsTerminal() bool {
	switch e.Name {
	case models.EventPermitRevoked, models.EventPTWCompleted:
		return true
	}
	return e.NextRole == ""
}

// PersonIDs are the users notified by id rather than by role.
func (e Event) PersonIDs() []string {
	ids := []string{}
	if e.CreatorID != "" {
		ids = append(ids, e.CreatorID)
	}
	if e.IsTerminal() {
		ids = append(ids, e.ApproverIDs...)
	}
	return ids
}

// Data is the template data bag of the event.
func (e Event) Data(baseURL string) map[string]string {
	label, link := ActionButton(e, baseURL)
	data := map[string]string{
		"permit_id":     e.PermitID,
		"permit_number": e.PermitNumber,
		"permit_kind":   e.Kind.ToHuman(),
		"status":        string(e.Status),
		"stage":         e.NextRole.ToHuman(),
		"department":    e.Department,
		"comments":      e.Comments,
		"actor_name":    e.ActorName,
		"next_steps":    NextStepsMessage(e),
		"action_label":  label,
		"action_link":   link,
		"date":          e.At.Format("02 Jan 2006 15:04"),
	}
	if e.Completion != models.CompletionNone {
		data["completion_status"] = string(e.Completion)
	}
	return data
}
