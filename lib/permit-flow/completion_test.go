package permitflow

import (
	"ptw-backend/models"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	t.Run(`no completion before approval`, func(t *testing.T) {
		p := newPTW()
		require.Equal(t, CompletionStepNone, CompletionStage(p))
		_, _, err := ApplyCompletion(p, issuer, "", time.Now())
		require.True(t, IsCode(err, CodeInvalidState))
	})

	t.Run(`job permits are never completed`, func(t *testing.T) {
		p := approveAll(t, newJobPermit())
		_, err := ApplyIssuerCompletion(p, issuer, time.Now())
		require.True(t, IsCode(err, CodeInvalidState))
	})

	t.Run(`issuer then QHSSE`, func(t *testing.T) {
		p := approveAll(t, newPTW())
		require.Equal(t, CompletionStepIssuer, CompletionStage(p))
		require.True(t, CanComplete(issuer, p))
		require.False(t, CanComplete(qhsse, p))

		_, err := ApplyFinalCompletion(p, qhsse, "area cleaned", time.Now())
		require.True(t, IsCode(err, CodeInvalidState))

		p, step, err := ApplyCompletion(p, issuer, "", time.Now())
		require.Nil(t, err)
		require.Equal(t, CompletionStepIssuer, step)
		require.Equal(t, models.CompletionPending, p.Completion.CompletionStatus)
		require.Equal(t, models.IssuerCompletionCompleted, p.Completion.IssuerCompletionStatus)
		require.Equal(t, issuer.Name, p.Completion.IssuerCompletionName)

		require.Equal(t, CompletionStepQHSSE, CompletionStage(p))
		_, _, err = ApplyCompletion(p, issuer, "done", time.Now())
		require.True(t, IsCode(err, CodeNotAssigned))

		_, _, err = ApplyCompletion(p, qhsse, "   ", time.Now())
		require.True(t, IsCode(err, CodeValidation))

		p, step, err = ApplyCompletion(p, qhsse, " area cleaned ", time.Now())
		require.Nil(t, err)
		require.Equal(t, CompletionStepQHSSE, step)
		require.Equal(t, models.CompletionJobComplete, p.Completion.CompletionStatus)
		require.Equal(t, "area cleaned", p.Completion.QHSSECompletionComments)
		require.Equal(t, CompletionStepNone, CompletionStage(p))

		_, _, err = ApplyCompletion(p, qhsse, "again", time.Now())
		require.True(t, IsCode(err, CodeInvalidState))
		require.False(t, CanInitiateRevocation(hod, p))
	})

	t.Run(`pending revocation blocks completion`, func(t *testing.T) {
		p := approveAll(t, newPTW())
		p, err := InitiateRevocation(p, hod, "weather alert", time.Now())
		require.Nil(t, err)
		require.False(t, CanComplete(issuer, p))
		_, err = ApplyIssuerCompletion(p, issuer, time.Now())
		require.True(t, IsCode(err, CodeInvalidState))
	})
}
