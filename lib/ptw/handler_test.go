package ptwhandler

import (
	"bytes"
	"context"
	"reflect"
	"strconv"
	"testing"
	"time"

	departmentprovider "ptw-backend/lib/dicts/department"
	jobpermitstore "ptw-backend/lib/job-permit/store"
	"ptw-backend/lib/notification"
	permitflow "ptw-backend/lib/permit-flow"
	permithistory "ptw-backend/lib/permit-history"
	ptwstore "ptw-backend/lib/ptw/store"
	"ptw-backend/models"
	apimodels "ptw-backend/models/api"
	permitapimodels "ptw-backend/models/api/permit"
	dbmodels "ptw-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	recs  map[string]*dbmodels.PermitToWork
	order []string
}

func (f *fakeStore) Create(rec dbmodels.PermitToWork) (string, error) {
	rec.ID = "ptw-" + strconv.Itoa(len(f.order)+1)
	f.recs[rec.ID] = &rec
	f.order = append(f.order, rec.ID)
	return rec.ID, nil
}

func (f *fakeStore) GetByID(id string) (*dbmodels.PermitToWork, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeStore) UpdateIfState(id string, status models.PermitStatus, assignedTo models.UserRole, completion models.CompletionStatus, updMap map[string]interface{}) (bool, error) {
	rec, ok := f.recs[id]
	if !ok || rec.Status != status || rec.AssignedTo != assignedTo || rec.CompletionStatus != completion {
		return false, nil
	}
	value := reflect.ValueOf(rec).Elem()
	for field, v := range updMap {
		value.FieldByName(field).Set(reflect.ValueOf(v))
	}
	return true, nil
}

func (f *fakeStore) List(filter ptwstore.Filter) ([]dbmodels.PermitToWork, error) {
	list := []dbmodels.PermitToWork{}
	for _, id := range f.order {
		rec := f.recs[id]
		if filter.CompletionStatus != "" && rec.CompletionStatus != filter.CompletionStatus {
			continue
		}
		if filter.JobPermitID != "" && rec.JobPermitID != filter.JobPermitID {
			continue
		}
		list = append(list, *rec)
	}
	return list, nil
}

type fakeJobPermits struct {
	jobpermitstore.Provider
	recs map[string]dbmodels.JobPermit
}

func (f fakeJobPermits) GetByID(id string) (*dbmodels.JobPermit, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

type fakeHistory struct {
	entries []permithistory.Entry
}

func (f *fakeHistory) Save(entry permithistory.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistory) List(kind models.PermitKind, permitID string) ([]permitapimodels.HistoryView, error) {
	list := []permitapimodels.HistoryView{}
	for _, e := range f.entries {
		if e.Kind == kind && e.PermitID == permitID {
			list = append(list, permitapimodels.HistoryView{Action: e.Action, Stage: e.Stage})
		}
	}
	return list, nil
}

type fakeDepartments struct {
	departmentprovider.Provider
}

func (f fakeDepartments) DepartmentMap() (map[string]string, error) {
	return models.DefaultDepartments, nil
}

type fakeNotifier struct {
	events []notification.Event
}

func (f *fakeNotifier) Notify(event notification.Event) error {
	f.events = append(f.events, event)
	return nil
}

var (
	receiver = permitflow.Actor{UserID: "rcv", Name: "Receiver", Role: models.RoleReceiver, Department: "OPS"}
	issuer   = permitflow.Actor{UserID: "iss", Name: "Issuer", Role: models.RoleIssuer, Department: "OPS"}
	hod      = permitflow.Actor{UserID: "hod", Name: "Head", Role: models.RoleHOD, Department: "OPS"}
	qhsse    = permitflow.Actor{UserID: "qa", Name: "Safety", Role: models.RoleQHSSE, Department: "QHSSE"}
	itIssuer = permitflow.Actor{UserID: "it-iss", Name: "IT Issuer", Role: models.RoleIssuer, Department: "IT"}
)

type env struct {
	store    *fakeStore
	history  *fakeHistory
	notifier *fakeNotifier
	handler  Provider
}

func approvedJobPermit() dbmodels.JobPermit {
	rec := dbmodels.JobPermit{
		PermitNumber:    "JP-20260101-0001",
		Department:      "Operations",
		DepartmentCode:  "OPS",
		CreatorID:       receiver.UserID,
		PermitApprovals: permitflow.NewApprovals(),
	}
	rec.ID = "jp-1"
	rec.Status = models.PermitApproved
	rec.AssignedTo = ""
	return rec
}

func newEnv(jobPermits ...dbmodels.JobPermit) env {
	e := env{
		store:    &fakeStore{recs: map[string]*dbmodels.PermitToWork{}},
		history:  &fakeHistory{},
		notifier: &fakeNotifier{},
	}
	jp := fakeJobPermits{recs: map[string]dbmodels.JobPermit{}}
	for _, rec := range jobPermits {
		jp.recs[rec.ID] = rec
	}
	inTx := func(fn func(store ptwstore.Provider, history permithistory.Provider) error) error {
		return fn(e.store, e.history)
	}
	e.handler = NewHandlerWithStore(e.store, jp, e.history, fakeDepartments{}, e.notifier, inTx)
	return e
}

func ptwData(days int) permitapimodels.PTWData {
	entry := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	return permitapimodels.PTWData{
		PermitData: permitapimodels.PermitData{
			JobLocation:    "Plant 2",
			JobDescription: "Hot work on line 4",
			WorkersNames:   []string{"Ali"},
		},
		JobPermitID: "jp-1",
		EntryDate:   apimodels.NewDate(entry),
		ExitDate:    apimodels.NewDate(entry.AddDate(0, 0, days-1)),
	}
}

func approvedPTW(t *testing.T, e env) string {
	ctx := context.Background()
	view, hMsg, err := e.handler.Create(receiver, ptwData(3))
	require.NoError(t, err)
	require.Empty(t, hMsg)
	for _, actor := range []permitflow.Actor{issuer, hod, qhsse} {
		_, err = e.handler.Approve(ctx, actor, view.ID, "")
		require.NoError(t, err)
	}
	return view.ID
}

func TestCreate(t *testing.T) {
	t.Run(`inherits the job permit department`, func(t *testing.T) {
		e := newEnv(approvedJobPermit())
		view, hMsg, err := e.handler.Create(receiver, ptwData(3))
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "Operations", view.Department)
		require.Equal(t, 3, view.WorkDuration)
		require.Equal(t, "JP-20260101-0001", view.JobPermitNumber)
		require.Equal(t, models.PermitPending, view.Status)
		require.Equal(t, models.RoleIssuer, view.AssignedTo)
		require.Equal(t, models.EventPTWCreated, e.notifier.events[0].Name)
	})

	t.Run(`duration limit`, func(t *testing.T) {
		e := newEnv(approvedJobPermit())
		_, _, err := e.handler.Create(receiver, ptwData(6))
		require.True(t, permitflow.IsCode(err, permitflow.CodeValidation))

		data := ptwData(1)
		data.ExitDate = apimodels.NewDate(data.EntryDate.Add(-time.Hour))
		_, _, err = e.handler.Create(receiver, data)
		require.True(t, permitflow.IsCode(err, permitflow.CodeValidation))
	})

	t.Run(`job permit must be approved`, func(t *testing.T) {
		jp := approvedJobPermit()
		jp.Status = models.PermitPending
		e := newEnv(jp)
		_, _, err := e.handler.Create(receiver, ptwData(1))
		require.True(t, permitflow.IsCode(err, permitflow.CodeInvalidState))

		_, _, err = newEnv().handler.Create(receiver, ptwData(1))
		require.True(t, permitflow.IsCode(err, permitflow.CodeNotFound))
	})

	t.Run(`issuer of another department is refused`, func(t *testing.T) {
		e := newEnv(approvedJobPermit())
		_, _, err := e.handler.Create(itIssuer, ptwData(1))
		require.True(t, permitflow.IsCode(err, permitflow.CodeForbidden))

		_, hMsg, err := e.handler.Create(issuer, ptwData(1))
		require.NoError(t, err)
		require.Empty(t, hMsg)
	})
}

func TestCompletion(t *testing.T) {
	ctx := context.Background()

	t.Run(`issuer then QHSSE`, func(t *testing.T) {
		e := newEnv(approvedJobPermit())
		id := approvedPTW(t, e)

		view, err := e.handler.Get(issuer, id)
		require.NoError(t, err)
		require.Equal(t, models.CompletionInProgress, view.Completion.Status)
		require.Equal(t, "ISSUER", view.Completion.Step)
		require.True(t, view.CanComplete)

		_, err = e.handler.Complete(ctx, qhsse, id, "done")
		require.True(t, permitflow.IsCode(err, permitflow.CodeNotAssigned))

		view, err = e.handler.Complete(ctx, issuer, id, "")
		require.NoError(t, err)
		require.Equal(t, models.CompletionPending, view.Completion.Status)
		require.Equal(t, models.RoleQHSSE, e.notifier.events[len(e.notifier.events)-1].NextRole)

		_, err = e.handler.Complete(ctx, qhsse, id, " ")
		require.True(t, permitflow.IsCode(err, permitflow.CodeValidation))

		view, err = e.handler.Complete(ctx, qhsse, id, "area cleaned")
		require.NoError(t, err)
		require.Equal(t, models.CompletionJobComplete, view.Completion.Status)
		require.Equal(t, "area cleaned", view.Completion.QHSSERemarks)
		require.False(t, view.CanComplete)

		last := e.notifier.events[len(e.notifier.events)-1]
		require.Equal(t, models.EventPTWCompleted, last.Name)

		history, err := e.handler.History(receiver, id)
		require.NoError(t, err)
		require.Equal(t, models.ActionIssuerCompleted, history[len(history)-2].Action)
		require.Equal(t, models.ActionJobCompleted, history[len(history)-1].Action)
		require.Equal(t, models.RoleQHSSE, history[len(history)-1].Stage)

		_, err = e.handler.Revoke(ctx, issuer, id, "late")
		require.Error(t, err)
	})

	t.Run(`not before approval`, func(t *testing.T) {
		e := newEnv(approvedJobPermit())
		view, _, err := e.handler.Create(receiver, ptwData(1))
		require.NoError(t, err)
		_, err = e.handler.Complete(ctx, issuer, view.ID, "")
		require.True(t, permitflow.IsCode(err, permitflow.CodeInvalidState))
	})

	t.Run(`list by completion`, func(t *testing.T) {
		e := newEnv(approvedJobPermit())
		approvedPTW(t, e)
		_, _, err := e.handler.Create(receiver, ptwData(1))
		require.NoError(t, err)

		filter := permitapimodels.PTWFilter{CompletionStatus: models.CompletionInProgress}
		list, rowCount, err := e.handler.List(qhsse, filter, apimodels.Pagination{})
		require.NoError(t, err)
		require.Equal(t, int64(1), rowCount)
		require.Len(t, list, 1)
	})
}

func TestCertificate(t *testing.T) {
	ctx := context.Background()

	t.Run(`approved permit`, func(t *testing.T) {
		e := newEnv(approvedJobPermit())
		id := approvedPTW(t, e)
		file, err := e.handler.Certificate(ctx, receiver, id)
		require.NoError(t, err)
		require.Equal(t, "application/pdf", file.ContentType)
		require.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))
	})

	t.Run(`pending permit`, func(t *testing.T) {
		e := newEnv(approvedJobPermit())
		view, _, err := e.handler.Create(receiver, ptwData(1))
		require.NoError(t, err)
		_, err = e.handler.Certificate(ctx, receiver, view.ID)
		require.True(t, permitflow.IsCode(err, permitflow.CodeInvalidState))
	})

	t.Run(`revoked permit`, func(t *testing.T) {
		e := newEnv(approvedJobPermit())
		id := approvedPTW(t, e)
		_, err := e.handler.Revoke(ctx, qhsse, id, "gas leak")
		require.NoError(t, err)
		_, err = e.handler.Certificate(ctx, receiver, id)
		require.True(t, permitflow.IsCode(err, permitflow.CodeAlreadyRevoked))
	})
}
