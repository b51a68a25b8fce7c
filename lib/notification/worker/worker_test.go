package notificationworker

import (
	"context"
	"testing"
	"time"

	"ptw-backend/models"
	dbmodels "ptw-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type failure struct {
	attempts int
	final    bool
}

type fakeStore struct {
	pending []dbmodels.Notification
	sent    []string
	failed  map[string]failure
}

func (f *fakeStore) Create(rec dbmodels.Notification) (string, error) { return "", nil }
func (f *fakeStore) ListPending(limit int) ([]dbmodels.Notification, error) {
	return f.pending, nil
}
func (f *fakeStore) MarkSent(id string, at time.Time) error {
	f.sent = append(f.sent, id)
	return nil
}
func (f *fakeStore) MarkFailed(id string, attempts int, lastError string, final bool) error {
	f.failed[id] = failure{attempts: attempts, final: final}
	return nil
}
func (f *fakeStore) CountPending() (int64, error) { return int64(len(f.failed)), nil }

type fakeSender struct {
	configured bool
	failFor    string
	calls      int
}

func (f *fakeSender) IsConfigured() bool                                { return f.configured }
func (f *fakeSender) SendHTML(to []string, subject, html, text string) error {
	f.calls++
	if subject == f.failFor {
		return errors.New("smtp is down")
	}
	return nil
}

func outbox() *fakeStore {
	rec := func(id, subject string, attempts int) dbmodels.Notification {
		return dbmodels.Notification{
			BaseModel:  dbmodels.BaseModel{ID: id},
			Event:      models.EventPermitCreated,
			Recipients: []string{"a@corp.com"},
			Subject:    subject,
			State:      models.NotificationPending,
			Attempts:   attempts,
		}
	}
	return &fakeStore{
		pending: []dbmodels.Notification{
			rec("n1", "ok", 0),
			rec("n2", "bad", 0),
			rec("n3", "bad", 2),
		},
		failed: map[string]failure{},
	}
}

func TestHandle(t *testing.T) {
	t.Run(`sends pending and counts attempts`, func(t *testing.T) {
		store := outbox()
		sender := &fakeSender{configured: true, failFor: "bad"}
		New(store, sender, 10, 3).handle(context.Background())

		require.Equal(t, []string{"n1"}, store.sent)
		require.Equal(t, failure{attempts: 1, final: false}, store.failed["n2"])
		require.Equal(t, failure{attempts: 3, final: true}, store.failed["n3"])
	})

	t.Run(`smtp not configured`, func(t *testing.T) {
		store := outbox()
		sender := &fakeSender{}
		New(store, sender, 10, 3).handle(context.Background())
		require.Zero(t, sender.calls)
		require.Empty(t, store.sent)
	})

	t.Run(`stops on cancelled context`, func(t *testing.T) {
		store := outbox()
		sender := &fakeSender{configured: true}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		New(store, sender, 10, 3).handle(ctx)
		require.Zero(t, sender.calls)
	})
}
