package notification

import (
	"fmt"
	"strings"

	"ptw-backend/models"
)

// NextStepsMessage tells the recipients what happens next with the permit.
func NextStepsMessage(event Event) string {
	kind := event.Kind.ToHuman()
	switch event.Name {
	case models.EventPermitRevoked:
		return fmt.Sprintf("The %s has been revoked. All work under it must stop.", kind)
	case models.EventPTWCompleted:
		return "The job has been closed by QHSSE. No further action is required."
	}
	if event.Status == models.PermitRejected {
		return fmt.Sprintf("The %s has been rejected. Review the comments and submit a new request if needed.", kind)
	}
	if event.Status == models.PermitRevocationPending {
		return fmt.Sprintf("A revocation of the %s is awaiting QHSSE review.", kind)
	}
	if event.Kind == models.KindJobPermit && event.Status == models.PermitApproved {
		return "The Job Permit is approved. A Permit to Work can now be requested."
	}
	switch event.Completion {
	case models.CompletionInProgress:
		return "The Permit to Work is approved. Work may start; the Permit Issuer marks it done when finished."
	case models.CompletionPending:
		return "The Permit Issuer marked the work as done. QHSSE final completion is pending."
	}
	if event.NextRole != "" {
		return fmt.Sprintf("The %s is awaiting %s review.", kind, event.NextRole.ToHuman())
	}
	return ""
}

// ActionButton returns the label and the link of the call to action.
func ActionButton(event Event, baseURL string) (label, link string) {
	path := "job-permits"
	if event.Kind == models.KindPermitToWork {
		path = "permits-to-work"
	}
	link = fmt.Sprintf("%s/%s/%s", strings.TrimRight(baseURL, "/"), path, event.PermitID)
	switch {
	case event.Name == models.EventPermitRevoked, event.Name == models.EventPTWCompleted, event.Status == models.PermitRejected:
		return "View " + event.Kind.ToHuman(), link
	case event.Status == models.PermitRevocationPending:
		return "Review Revocation", link
	case event.Kind == models.KindJobPermit && event.Status == models.PermitApproved:
		return "Request Permit to Work", link
	case event.Completion == models.CompletionInProgress, event.Completion == models.CompletionPending:
		return "Complete Job", link
	case event.NextRole != "":
		return "Review " + event.Kind.ToHuman(), link
	}
	return "View " + event.Kind.ToHuman(), link
}
