package permitflow

import (
	"ptw-backend/models"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	issuer   = Actor{UserID: "u-iss", Name: "Ivan Issuer", Role: models.RoleIssuer, Department: "ASM"}
	hod      = Actor{UserID: "u-hod", Name: "Helen Head", Role: models.RoleHOD, Department: "ASM"}
	qhsse    = Actor{UserID: "u-qa", Name: "Quinn Safety", Role: models.RoleQHSSE, Department: "QHSSE"}
	receiver = Actor{UserID: "u-rcv", Name: "Rob Receiver", Role: models.RoleReceiver, Department: "ASM"}
	admin    = Actor{UserID: "u-adm", Name: "Ada Admin", Role: models.RoleAdmin, Department: "IT"}
)

func newJobPermit() Permit {
	return Permit{Approvals: NewApprovals()}
}

func newPTW() Permit {
	return Permit{Approvals: NewApprovals(), Completion: &models.PermitCompletion{}}
}

func approveAll(t *testing.T, p Permit) Permit {
	for _, actor := range []Actor{issuer, hod, qhsse} {
		var err error
		p, err = ApplyDecision(p, actor, Decision{Approve: true, At: time.Now()})
		require.Nil(t, err)
	}
	return p
}

func TestDeriveStatus(t *testing.T) {
	t.Run(`pending while any stage pending`, func(t *testing.T) {
		require.Equal(t, models.PermitPending, DeriveStatus(models.StageApproved, models.StagePending, models.StagePending))
		require.Equal(t, models.PermitPending, DeriveStatus(models.StageApproved, models.StageApproved, models.StagePending))
	})
	t.Run(`approved iff all approved`, func(t *testing.T) {
		require.Equal(t, models.PermitApproved, DeriveStatus(models.StageApproved, models.StageApproved, models.StageApproved))
	})
	t.Run(`rejected if any rejected`, func(t *testing.T) {
		require.Equal(t, models.PermitRejected, DeriveStatus(models.StageApproved, models.StageRejected, models.StagePending))
		require.Equal(t, models.PermitRejected, DeriveStatus(models.StageRejected, models.StagePending, models.StagePending))
	})
}

func TestApplyDecision(t *testing.T) {
	t.Run(`new permit waits for issuer`, func(t *testing.T) {
		p := newJobPermit()
		require.Equal(t, State{Kind: StatePending, Stage: models.RoleIssuer}, Derive(p))
		require.True(t, CanAct(issuer, p))
		require.False(t, CanAct(hod, p))
		require.False(t, CanAct(receiver, p))
		require.False(t, CanAct(admin, p))
	})

	t.Run(`approvals advance ISS to HOD to QA`, func(t *testing.T) {
		p := newJobPermit()
		p, err := ApplyDecision(p, issuer, Decision{Approve: true, Comments: " ok "})
		require.Nil(t, err)
		require.Equal(t, models.RoleHOD, p.Approvals.AssignedTo)
		require.Equal(t, models.StageApproved, p.Approvals.IssuerStatus)
		require.Equal(t, issuer.Name, p.Approvals.IssuerName)
		require.Equal(t, "ok", p.Approvals.IssuerComments)
		require.NotNil(t, p.Approvals.IssuerDate)

		p, err = ApplyDecision(p, hod, Decision{Approve: true})
		require.Nil(t, err)
		require.Equal(t, models.RoleQHSSE, p.Approvals.AssignedTo)
		require.Equal(t, models.PermitPending, p.Approvals.Status)

		p, err = ApplyDecision(p, qhsse, Decision{Approve: true})
		require.Nil(t, err)
		require.Equal(t, models.PermitApproved, p.Approvals.Status)
		require.Equal(t, models.UserRole(""), p.Approvals.AssignedTo)
		require.Equal(t, StateApproved, Derive(p).Kind)
	})

	t.Run(`wrong role is not assigned`, func(t *testing.T) {
		p := newJobPermit()
		_, err := ApplyDecision(p, hod, Decision{Approve: true})
		require.True(t, IsCode(err, CodeNotAssigned))
		_, err = ApplyDecision(p, admin, Decision{Approve: true})
		require.True(t, IsCode(err, CodeNotAssigned))
	})

	t.Run(`input is not mutated`, func(t *testing.T) {
		p := newPTW()
		_, err := ApplyDecision(p, issuer, Decision{Approve: true})
		require.Nil(t, err)
		require.Equal(t, models.StagePending, p.Approvals.IssuerStatus)
		require.Equal(t, models.RoleIssuer, p.Approvals.AssignedTo)
	})

	t.Run(`reject needs comments and finishes the permit`, func(t *testing.T) {
		p := newJobPermit()
		p, err := ApplyDecision(p, issuer, Decision{Approve: true})
		require.Nil(t, err)

		_, err = ApplyDecision(p, hod, Decision{Approve: false, Comments: "  "})
		require.True(t, IsCode(err, CodeValidation))

		p, err = ApplyDecision(p, hod, Decision{Approve: false, Comments: "missing isolation"})
		require.Nil(t, err)
		require.Equal(t, models.PermitRejected, p.Approvals.Status)
		require.Equal(t, models.UserRole(""), p.Approvals.AssignedTo)
		require.Equal(t, State{Kind: StateRejected, Stage: models.RoleHOD, Reason: "missing isolation"}, Derive(p))

		_, err = ApplyDecision(p, qhsse, Decision{Approve: true})
		require.True(t, IsCode(err, CodeInvalidState))
	})

	t.Run(`approved permit to work starts completion`, func(t *testing.T) {
		p := approveAll(t, newPTW())
		require.Equal(t, models.CompletionInProgress, p.Completion.CompletionStatus)
		require.Equal(t, models.IssuerCompletionInProgress, p.Completion.IssuerCompletionStatus)
	})

	t.Run(`revoked and locked permits refuse decisions`, func(t *testing.T) {
		p := newJobPermit()
		p, err := InitiateRevocation(p, hod, "unsafe scaffolding", time.Now())
		require.Nil(t, err)
		_, err = ApplyDecision(p, issuer, Decision{Approve: true})
		require.True(t, IsCode(err, CodeInvalidState))
		require.False(t, CanAct(qhsse, p))

		p, err = InitiateRevocation(newJobPermit(), qhsse, "unsafe scaffolding", time.Now())
		require.Nil(t, err)
		_, err = ApplyDecision(p, issuer, Decision{Approve: true})
		require.True(t, IsCode(err, CodeAlreadyRevoked))
	})
}

func TestStages(t *testing.T) {
	t.Run(`stage order`, func(t *testing.T) {
		require.Equal(t, models.RoleHOD, NextStage(models.RoleIssuer))
		require.Equal(t, models.RoleQHSSE, NextStage(models.RoleHOD))
		require.Equal(t, models.UserRole(""), NextStage(models.RoleQHSSE))
	})
	t.Run(`receivers and admins are never assigned`, func(t *testing.T) {
		require.False(t, IsAssignableRole(models.RoleAdmin))
		require.False(t, IsAssignableRole(models.RoleReceiver))
		require.True(t, IsAssignableRole(models.RoleHOD))
	})
	t.Run(`admin role is offered only to admins`, func(t *testing.T) {
		require.NotContains(t, SelectableUserRoles(models.RoleIssuer), models.RoleAdmin)
		require.Contains(t, SelectableUserRoles(models.RoleAdmin), models.RoleAdmin)
	})
}

func TestWorkDuration(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

	t.Run(`both ends included`, func(t *testing.T) {
		require.Equal(t, 1, WorkDuration(day(1), day(1)))
		require.Equal(t, 2, WorkDuration(day(1), day(2)))
		require.Equal(t, 10, WorkDuration(day(1), day(10)))
		require.Equal(t, 2, WorkDuration(day(1), day(1).Add(3*time.Hour)))
	})
	t.Run(`validation`, func(t *testing.T) {
		duration, err := ValidateDuration(day(1), day(5))
		require.Nil(t, err)
		require.Equal(t, 5, duration)

		_, err = ValidateDuration(day(1), day(6))
		require.NotNil(t, err)
		require.Equal(t, "Request cannot exceed 5 days", err.Error())

		_, err = ValidateDuration(day(5), day(1))
		require.True(t, IsCode(err, CodeValidation))

		_, err = ValidateDuration(time.Time{}, day(1))
		require.True(t, IsCode(err, CodeValidation))
	})
}
