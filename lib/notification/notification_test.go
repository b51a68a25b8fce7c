package notification

import (
	"strings"
	"testing"
	"time"

	"ptw-backend/models"
	dbmodels "ptw-backend/models/db"

	"github.com/stretchr/testify/require"
)

func user(id, email string, role models.UserRole, department string) dbmodels.User {
	return dbmodels.User{
		BaseModel:    dbmodels.BaseModel{ID: id},
		Email:        email,
		RoleID:       role,
		DepartmentID: department,
		IsActive:     true,
	}
}

var candidates = []dbmodels.User{
	user("rcv", "rcv@corp.com", models.RoleReceiver, "OPS"),
	user("iss-ops", "iss.ops@corp.com", models.RoleIssuer, "OPS"),
	user("iss-it", "iss.it@corp.com", models.RoleIssuer, "IT"),
	user("hod-ops", "hod.ops@corp.com", models.RoleHOD, "OPS"),
	user("qa-1", "qa@corp.com", models.RoleQHSSE, "QHSSE"),
	user("qa-2", "qa2@corp.com", models.RoleQHSSE, "ASM"),
}

func ids(users []dbmodels.User) []string {
	result := []string{}
	for _, u := range users {
		result = append(result, u.ID)
	}
	return result
}

func TestUsersToNotify(t *testing.T) {
	t.Run(`issuers of the permit department and the creator on create`, func(t *testing.T) {
		event := Event{
			Name:           models.EventPermitCreated,
			NextRole:       models.RoleIssuer,
			DepartmentCode: "OPS",
			CreatorID:      "rcv",
		}
		require.ElementsMatch(t, []string{"rcv", "iss-ops"}, ids(UsersToNotify(event, candidates)))
	})

	t.Run(`QA from any department`, func(t *testing.T) {
		event := Event{
			Name:           models.EventPermitStatusUpdate,
			NextRole:       models.RoleQHSSE,
			DepartmentCode: "OPS",
			CreatorID:      "rcv",
		}
		require.ElementsMatch(t, []string{"rcv", "qa-1", "qa-2"}, ids(UsersToNotify(event, candidates)))
	})

	t.Run(`terminal event reaches approvers`, func(t *testing.T) {
		event := Event{
			Name:           models.EventPermitRevoked,
			DepartmentCode: "OPS",
			CreatorID:      "rcv",
			ApproverIDs:    []string{"iss-ops", "hod-ops", "qa-1"},
		}
		require.ElementsMatch(t, []string{"rcv", "iss-ops", "hod-ops", "qa-1"}, ids(UsersToNotify(event, candidates)))
	})

	t.Run(`approvers are skipped while the chain goes on`, func(t *testing.T) {
		event := Event{
			Name:           models.EventPermitStatusUpdate,
			NextRole:       models.RoleHOD,
			DepartmentCode: "OPS",
			CreatorID:      "rcv",
			ApproverIDs:    []string{"iss-ops"},
		}
		require.ElementsMatch(t, []string{"rcv", "hod-ops"}, ids(UsersToNotify(event, candidates)))
	})

	t.Run(`one mail per address and no inactive users`, func(t *testing.T) {
		inactive := user("hod-2", "hod2@corp.com", models.RoleHOD, "OPS")
		inactive.IsActive = false
		list := append([]dbmodels.User{}, candidates...)
		list = append(list, user("rcv", "RCV@corp.com", models.RoleReceiver, "OPS"), inactive)
		event := Event{
			Name:           models.EventPermitStatusUpdate,
			NextRole:       models.RoleHOD,
			DepartmentCode: "ops",
			CreatorID:      "rcv",
		}
		require.Equal(t, []string{"rcv", "hod-ops"}, ids(UsersToNotify(event, list)))
	})
}

func TestNextStepsAndAction(t *testing.T) {
	t.Run(`pending review`, func(t *testing.T) {
		event := Event{Name: models.EventPermitCreated, Kind: models.KindJobPermit, PermitID: "p1", Status: models.PermitPending, NextRole: models.RoleIssuer}
		require.Equal(t, "The Job Permit is awaiting Permit Issuer review.", NextStepsMessage(event))
		label, link := ActionButton(event, "https://ptw.corp.com/")
		require.Equal(t, "Review Job Permit", label)
		require.Equal(t, "https://ptw.corp.com/job-permits/p1", link)
	})

	t.Run(`approved job permit invites a permit to work`, func(t *testing.T) {
		event := Event{Name: models.EventPermitStatusUpdate, Kind: models.KindJobPermit, Status: models.PermitApproved}
		require.Contains(t, NextStepsMessage(event), "Permit to Work can now be requested")
		label, _ := ActionButton(event, "")
		require.Equal(t, "Request Permit to Work", label)
	})

	t.Run(`completion steps`, func(t *testing.T) {
		event := Event{Name: models.EventPTWStatusUpdate, Kind: models.KindPermitToWork, PermitID: "w1", Status: models.PermitApproved, Completion: models.CompletionPending, NextRole: models.RoleQHSSE}
		require.Contains(t, NextStepsMessage(event), "QHSSE final completion is pending")
		label, link := ActionButton(event, "http://host")
		require.Equal(t, "Complete Job", label)
		require.Equal(t, "http://host/permits-to-work/w1", link)
	})

	t.Run(`revoked`, func(t *testing.T) {
		event := Event{Name: models.EventPermitRevoked, Kind: models.KindPermitToWork, Status: models.PermitRevoked}
		require.Contains(t, NextStepsMessage(event), "revoked")
		label, _ := ActionButton(event, "")
		require.Equal(t, "View Permit to Work", label)
	})
}

func TestRender(t *testing.T) {
	t.Run(`unknown keys render empty and values are escaped`, func(t *testing.T) {
		out := Fill("<p>#{comments}</p><p>#{missing}</p>", map[string]string{"comments": "<b>ok</b>"}, true)
		require.Equal(t, "<p>&lt;b&gt;ok&lt;/b&gt;</p><p></p>", out)
	})

	t.Run(`every event has a template`, func(t *testing.T) {
		events := []models.NotificationEvent{
			models.EventPermitCreated, models.EventPermitStatusUpdate, models.EventPTWCreated,
			models.EventPTWStatusUpdate, models.EventPTWCompleted, models.EventPermitRevoked,
		}
		for _, name := range events {
			event := Event{Name: name, Kind: models.KindPermitToWork, PermitID: "w1", PermitNumber: "PTW-1", Status: models.PermitApproved, At: time.Now()}
			subject, body, text, err := Render(name, event.Data("http://host"))
			require.NoError(t, err, name)
			require.Contains(t, subject, "PTW-1")
			require.Contains(t, body, "PTW-1")
			require.NotContains(t, body, "#{")
			require.True(t, strings.HasPrefix(text, subject))
		}
	})

	t.Run(`unknown event`, func(t *testing.T) {
		_, _, _, err := Render("unknown", nil)
		require.Error(t, err)
	})
}
