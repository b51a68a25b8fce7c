package notification

import (
	"strings"

	"ptw-backend/models"
	dbmodels "ptw-backend/models/db"
)

// UsersToNotify picks the recipients of event out of candidates.
// The next role in the chain is notified (ISS and HOD within the permit
// department, QA from any department), plus the creator; terminal events also
// reach every stage approver. Each email gets one message.
func UsersToNotify(event Event, candidates []dbmodels.User) []dbmodels.User {
	persons := map[string]bool{}
	for _, id := range event.PersonIDs() {
		persons[id] = true
	}
	seen := map[string]bool{}
	result := []dbmodels.User{}
	for _, user := range candidates {
		if !user.IsActive || user.Email == "" {
			continue
		}
		if !persons[user.ID] && !isNextApprover(event, user) {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(user.Email))
		if seen[email] {
			continue
		}
		seen[email] = true
		result = append(result, user)
	}
	return result
}

func isNextApprover(event Event, user dbmodels.User) bool {
	if event.NextRole == "" || user.RoleID != event.NextRole {
		return false
	}
	if event.NextRole == models.RoleQHSSE {
		return true
	}
	return strings.EqualFold(user.DepartmentID, event.DepartmentCode)
}

// Emails returns the addresses of users.
func Emails(users []dbmodels.User) []string {
	emails := make([]string, 0, len(users))
	for _, user := range users {
		emails = append(emails, user.Email)
	}
	return emails
}
