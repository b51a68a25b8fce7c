package ptwhandler

import (
	"context"
	"strings"
	"time"

	"ptw-backend/db"
	departmentprovider "ptw-backend/lib/dicts/department"
	pdfexport "ptw-backend/lib/export/pdf"
	jobpermithandler "ptw-backend/lib/job-permit"
	jobpermitstore "ptw-backend/lib/job-permit/store"
	"ptw-backend/lib/metrics"
	"ptw-backend/lib/notification"
	permitaction "ptw-backend/lib/permit-action"
	permitflow "ptw-backend/lib/permit-flow"
	permithistory "ptw-backend/lib/permit-history"
	ptwstore "ptw-backend/lib/ptw/store"
	"ptw-backend/lib/utils/helpers"
	initchecker "ptw-backend/lib/utils/init-checker"
	"ptw-backend/lib/utils/lock"
	"ptw-backend/models"
	apimodels "ptw-backend/models/api"
	permitapimodels "ptw-backend/models/api/permit"
	dbmodels "ptw-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const kind = models.KindPermitToWork

type Provider interface {
	Create(actor permitflow.Actor, data permitapimodels.PTWData) (view *permitapimodels.PTWView, hMsg string, err error)
	Get(actor permitflow.Actor, id string) (view *permitapimodels.PTWView, err error)
	List(actor permitflow.Actor, filter permitapimodels.PTWFilter, pagination apimodels.Pagination) (list []permitapimodels.PTWView, rowCount int64, err error)
	ListVisible(actor permitflow.Actor, filter permitapimodels.PTWFilter) (list []dbmodels.PermitToWork, err error)
	Approve(ctx context.Context, actor permitflow.Actor, id, comments string) (view *permitapimodels.PTWView, err error)
	Reject(ctx context.Context, actor permitflow.Actor, id, comments string) (view *permitapimodels.PTWView, err error)
	// Complete runs the issuer or the QHSSE completion step, whichever is active.
	Complete(ctx context.Context, actor permitflow.Actor, id, remarks string) (view *permitapimodels.PTWView, err error)
	Revoke(ctx context.Context, actor permitflow.Actor, id, reason string) (view *permitapimodels.PTWView, err error)
	ReviewRevocation(ctx context.Context, actor permitflow.Actor, id string, approve bool, comments string) (view *permitapimodels.PTWView, err error)
	History(actor permitflow.Actor, id string) (list []permitapimodels.HistoryView, err error)
	Certificate(ctx context.Context, actor permitflow.Actor, id string) (file *models.File, err error)
}

// TxFunc runs fn with stores bound to one database transaction.
type TxFunc func(fn func(store ptwstore.Provider, history permithistory.Provider) error) error

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithStore(
		ptwstore.NewInstance(db.DB),
		jobpermitstore.NewInstance(db.DB),
		permithistory.Instance,
		departmentprovider.Instance,
		notification.Instance,
		dbTx,
	)
}

func dbTx(fn func(store ptwstore.Provider, history permithistory.Provider) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(ptwstore.NewInstance(tx), permithistory.NewHandlerWithTx(tx))
	})
}

func NewHandlerWithStore(store ptwstore.Provider, jobPermitStore jobpermitstore.Provider, history permithistory.Provider,
	departments departmentprovider.Provider, notifier notification.Provider, inTx TxFunc) Provider {
	instance := impl{
		store:          store,
		jobPermitStore: jobPermitStore,
		history:        history,
		departments:    departments,
		notifier:       notifier,
		inTx:           inTx,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"jobPermitStore", instance.jobPermitStore,
		"history", instance.history,
		"departments", instance.departments,
		"notifier", instance.notifier,
		"inTx", instance.inTx,
	)
	return instance
}

type impl struct {
	store          ptwstore.Provider
	jobPermitStore jobpermitstore.Provider
	history        permithistory.Provider
	departments    departmentprovider.Provider
	notifier       notification.Provider
	inTx           TxFunc
}

func (i impl) Create(actor permitflow.Actor, data permitapimodels.PTWData) (*permitapimodels.PTWView, string, error) {
	logger := log.WithFields(log.Fields{
		"user_id":       actor.UserID,
		"job_permit_id": data.JobPermitID,
	})
	jobPermit, err := i.jobPermitStore.GetByID(data.JobPermitID)
	if err != nil {
		return nil, "", errors.Wrap(err, "error getting job permit")
	}
	if jobPermit == nil {
		return nil, "", permitaction.NotFound(models.KindJobPermit)
	}
	if err = jobpermithandler.CanCreatePTW(actor, *jobPermit); err != nil {
		return nil, "", err
	}
	duration, err := permitflow.ValidateDuration(data.EntryDate.Time, data.ExitDate.Time)
	if err != nil {
		return nil, "", err
	}
	rec := dbmodels.PermitToWork{
		PermitNumber:    helpers.PermitNumber("PTW", time.Now()),
		JobPermitID:     jobPermit.ID,
		Department:      jobPermit.Department,
		DepartmentCode:  jobPermit.DepartmentCode,
		JobLocation:     strings.TrimSpace(data.JobLocation),
		SubLocation:     strings.TrimSpace(data.SubLocation),
		JobDescription:  strings.TrimSpace(data.JobDescription),
		WorkersNames:    helpers.TrimList(data.WorkersNames),
		EntryDate:       data.EntryDate.Time,
		ExitDate:        data.ExitDate.Time,
		WorkDuration:    duration,
		CreatorID:       actor.UserID,
		CreatorName:     actor.Name,
		PermitApprovals: permitflow.NewApprovals(),
	}
	after := toPermit(rec)
	err = i.inTx(func(store ptwstore.Provider, history permithistory.Provider) error {
		rec.ID, err = store.Create(rec)
		if err != nil {
			return errors.Wrap(err, "error creating permit to work")
		}
		return history.Save(permithistory.Entry{
			Kind:     kind,
			PermitID: rec.ID,
			Actor:    actor,
			Action:   models.ActionCreated,
			After:    &after,
		})
	})
	if err != nil {
		logger.WithError(err).Error("error creating permit to work")
		return nil, "", err
	}
	logger.
		WithField("permit_id", rec.ID).
		WithField("permit_number", rec.PermitNumber).
		Info("permit to work created")
	metrics.RecordTransition(string(kind), string(models.ActionCreated))
	rec.JobPermit = jobPermit
	permitaction.Notify(i.notifier, permitaction.NewEvent(models.EventPTWCreated, ref(rec), actor, "", after))
	view := convert(actor, rec)
	return &view, "", nil
}

func (i impl) Get(actor permitflow.Actor, id string) (*permitapimodels.PTWView, error) {
	rec, err := i.getVisible(actor, id)
	if err != nil {
		return nil, err
	}
	view := convert(actor, *rec)
	return &view, nil
}

func (i impl) List(actor permitflow.Actor, filter permitapimodels.PTWFilter, pagination apimodels.Pagination) ([]permitapimodels.PTWView, int64, error) {
	visible, err := i.ListVisible(actor, filter)
	if err != nil {
		return nil, 0, err
	}
	from, to := pagination.Slice(len(visible))
	list := make([]permitapimodels.PTWView, 0, to-from)
	for _, rec := range visible[from:to] {
		list = append(list, convert(actor, rec))
	}
	return list, int64(len(visible)), nil
}

func (i impl) ListVisible(actor permitflow.Actor, filter permitapimodels.PTWFilter) ([]dbmodels.PermitToWork, error) {
	storeFilter := ptwstore.Filter{
		JobPermitID:      filter.JobPermitID,
		Status:           filter.Status,
		AssignedTo:       filter.AssignedTo,
		CompletionStatus: filter.CompletionStatus,
		Department:       filter.Department,
		Search:           filter.Search,
	}
	if filter.OnlyMine {
		storeFilter.CreatorID = actor.UserID
	}
	recList, err := i.store.List(storeFilter)
	if err != nil {
		return nil, errors.Wrap(err, "error getting permit to work list")
	}
	departmentMap, err := i.departments.DepartmentMap()
	if err != nil {
		return nil, err
	}
	return permitflow.ResolveVisible(permitaction.Viewer(actor), recList, departmentMap), nil
}

func (i impl) Approve(ctx context.Context, actor permitflow.Actor, id, comments string) (*permitapimodels.PTWView, error) {
	return i.decide(ctx, actor, id, true, comments)
}

func (i impl) Reject(ctx context.Context, actor permitflow.Actor, id, comments string) (*permitapimodels.PTWView, error) {
	return i.decide(ctx, actor, id, false, comments)
}

func (i impl) decide(ctx context.Context, actor permitflow.Actor, id string, approve bool, comments string) (*permitapimodels.PTWView, error) {
	action := permitaction.DecisionAction(approve)
	return i.transition(ctx, actor, id, comments, func(p permitflow.Permit) (step, error) {
		res, err := permitflow.ApplyDecision(p, actor, permitflow.Decision{Approve: approve, Comments: comments, At: time.Now()})
		return step{after: res, stage: p.Approvals.AssignedTo, action: action}, err
	})
}

func (i impl) Complete(ctx context.Context, actor permitflow.Actor, id, remarks string) (*permitapimodels.PTWView, error) {
	return i.transition(ctx, actor, id, remarks, func(p permitflow.Permit) (step, error) {
		res, completionStep, err := permitflow.ApplyCompletion(p, actor, remarks, time.Now())
		action := models.ActionIssuerCompleted
		if completionStep == permitflow.CompletionStepQHSSE {
			action = models.ActionJobCompleted
		}
		return step{after: res, stage: completionStep.Role(), action: action}, err
	})
}

func (i impl) Revoke(ctx context.Context, actor permitflow.Actor, id, reason string) (*permitapimodels.PTWView, error) {
	return i.transition(ctx, actor, id, reason, func(p permitflow.Permit) (step, error) {
		res, err := permitflow.InitiateRevocation(p, actor, reason, time.Now())
		return step{after: res, action: models.ActionRevocationInitiated}, err
	})
}

func (i impl) ReviewRevocation(ctx context.Context, actor permitflow.Actor, id string, approve bool, comments string) (*permitapimodels.PTWView, error) {
	return i.transition(ctx, actor, id, comments, func(p permitflow.Permit) (step, error) {
		res, err := permitflow.ReviewRevocation(p, actor, approve, comments, time.Now())
		return step{after: res, stage: models.RoleQHSSE, action: permitaction.ReviewAction(approve)}, err
	})
}

type step struct {
	after  permitflow.Permit
	stage  models.UserRole
	action models.PermitAction
}

// transition applies change to the stored permit under the permit lock and
// commits it only if nobody moved the permit meanwhile.
func (i impl) transition(ctx context.Context, actor permitflow.Actor, id, comment string,
	change func(p permitflow.Permit) (step, error)) (*permitapimodels.PTWView, error) {
	logger := log.WithFields(log.Fields{
		"permit_id": id,
		"user_id":   actor.UserID,
	})
	var rec *dbmodels.PermitToWork
	var done step
	err := permitaction.WithPermitLock(ctx, kind, id, func() (err error) {
		rec, err = i.getVisible(actor, id)
		if err != nil {
			return err
		}
		before := toPermit(*rec)
		done, err = change(before)
		if err != nil {
			return err
		}
		after := done.after
		return i.inTx(func(store ptwstore.Provider, history permithistory.Provider) error {
			updMap := dbmodels.LifecycleUpdMap(after.Approvals, after.Revocation, after.Completion)
			updated, err := store.UpdateIfState(id, before.Approvals.Status, before.Approvals.AssignedTo, before.Completion.CompletionStatus, updMap)
			if err != nil {
				return errors.Wrap(err, "error updating permit to work")
			}
			if !updated {
				return permitaction.Conflict(kind)
			}
			return history.Save(permithistory.Entry{
				Kind:     kind,
				PermitID: id,
				Actor:    actor,
				Action:   done.action,
				Stage:    done.stage,
				Comment:  strings.TrimSpace(comment),
				Before:   &before,
				After:    &after,
			})
		})
	})
	if err != nil {
		if _, ok := permitflow.AsError(err); ok {
			logger.WithError(err).Info("permit to work transition refused")
		} else {
			logger.WithError(err).Error("error changing permit to work")
		}
		return nil, err
	}
	after := done.after
	logger.
		WithField("action", done.action).
		WithField("status", after.Approvals.Status).
		Info("permit to work changed")
	metrics.RecordTransition(string(kind), string(done.action))

	rec.PermitApprovals = after.Approvals
	rec.PermitRevocation = after.Revocation
	rec.PermitCompletion = *after.Completion
	event := permitaction.NewEvent(permitaction.StatusEvent(kind, after), ref(*rec), actor, strings.TrimSpace(comment), after)
	permitaction.Notify(i.notifier, event)
	view := convert(actor, *rec)
	return &view, nil
}

func (i impl) History(actor permitflow.Actor, id string) ([]permitapimodels.HistoryView, error) {
	if _, err := i.getVisible(actor, id); err != nil {
		return nil, err
	}
	return i.history.List(kind, id)
}

func (i impl) Certificate(ctx context.Context, actor permitflow.Actor, id string) (*models.File, error) {
	rec, err := i.getVisible(actor, id)
	if err != nil {
		return nil, err
	}
	if rec.Status == models.PermitRevoked {
		return nil, permitflow.NewError(permitflow.CodeAlreadyRevoked, "permit is already revoked")
	}
	if rec.Status != models.PermitApproved {
		return nil, permitflow.NewError(permitflow.CodeInvalidState, "certificate is available for approved permits only")
	}
	if !lock.Resource.Acquire(ctx) {
		return nil, errors.New("certificate build cancelled")
	}
	defer lock.Resource.Release()
	body, err := pdfexport.GenerateCertificate(*rec)
	if err != nil {
		return nil, errors.Wrap(err, "error generating certificate")
	}
	return &models.File{
		FileName:    rec.PermitNumber + ".pdf",
		ContentType: "application/pdf",
		Body:        body,
	}, nil
}

func (i impl) getVisible(actor permitflow.Actor, id string) (*dbmodels.PermitToWork, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "error getting permit to work")
	}
	if rec == nil {
		return nil, permitaction.NotFound(kind)
	}
	departmentMap, err := i.departments.DepartmentMap()
	if err != nil {
		return nil, err
	}
	if !permitflow.CanViewPermit(permitaction.Viewer(actor), *rec, departmentMap) {
		return nil, permitaction.Forbidden(kind)
	}
	return rec, nil
}

func convert(actor permitflow.Actor, rec dbmodels.PermitToWork) permitapimodels.PTWView {
	view := permitapimodels.PTWConvert(rec)
	p := toPermit(rec)
	view.Completion.Step = string(permitflow.CompletionStage(p))
	view.Actions = permitapimodels.Actions{
		CanAct:              permitflow.CanAct(actor, p),
		CanRevoke:           permitflow.CanInitiateRevocation(actor, p),
		CanReviewRevocation: permitflow.CanReviewRevocation(actor, p),
		CanComplete:         permitflow.CanComplete(actor, p),
	}
	return view
}

func toPermit(rec dbmodels.PermitToWork) permitflow.Permit {
	completion := rec.PermitCompletion
	return permitflow.Permit{
		Approvals:  rec.PermitApprovals,
		Revocation: rec.PermitRevocation,
		Completion: &completion,
	}
}

func ref(rec dbmodels.PermitToWork) permitaction.PermitRef {
	return permitaction.PermitRef{
		Kind:           kind,
		ID:             rec.ID,
		Number:         rec.PermitNumber,
		DepartmentCode: rec.DepartmentCode,
		Department:     rec.Department,
		CreatorID:      rec.CreatorID,
	}
}
