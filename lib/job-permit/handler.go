package jobpermithandler

import (
	"context"
	"strings"
	"time"

	"ptw-backend/db"
	departmentprovider "ptw-backend/lib/dicts/department"
	filestorage "ptw-backend/lib/file-storage"
	jobpermitstore "ptw-backend/lib/job-permit/store"
	"ptw-backend/lib/metrics"
	"ptw-backend/lib/notification"
	permitaction "ptw-backend/lib/permit-action"
	permitflow "ptw-backend/lib/permit-flow"
	permithistory "ptw-backend/lib/permit-history"
	"ptw-backend/lib/utils/helpers"
	initchecker "ptw-backend/lib/utils/init-checker"
	"ptw-backend/models"
	apimodels "ptw-backend/models/api"
	permitapimodels "ptw-backend/models/api/permit"
	dbmodels "ptw-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const kind = models.KindJobPermit

type Provider interface {
	Create(actor permitflow.Actor, data permitapimodels.JobPermitData) (view *permitapimodels.JobPermitView, hMsg string, err error)
	Get(actor permitflow.Actor, id string) (view *permitapimodels.JobPermitView, err error)
	List(actor permitflow.Actor, filter permitapimodels.PermitFilter, pagination apimodels.Pagination) (list []permitapimodels.JobPermitView, rowCount int64, err error)
	// ListVisible returns every stored permit matching filter that actor may see.
	ListVisible(actor permitflow.Actor, filter permitapimodels.PermitFilter) (list []dbmodels.JobPermit, err error)
	Approve(ctx context.Context, actor permitflow.Actor, id, comments string) (view *permitapimodels.JobPermitView, err error)
	Reject(ctx context.Context, actor permitflow.Actor, id, comments string) (view *permitapimodels.JobPermitView, err error)
	Revoke(ctx context.Context, actor permitflow.Actor, id, reason string) (view *permitapimodels.JobPermitView, err error)
	ReviewRevocation(ctx context.Context, actor permitflow.Actor, id string, approve bool, comments string) (view *permitapimodels.JobPermitView, err error)
	History(actor permitflow.Actor, id string) (list []permitapimodels.HistoryView, err error)
	AddAttachment(ctx context.Context, actor permitflow.Actor, id string, file filestorage.UploadFile) (view *permitapimodels.AttachmentView, hMsg string, err error)
	ListAttachments(actor permitflow.Actor, id string) (list []permitapimodels.AttachmentView, err error)
	GetAttachment(ctx context.Context, actor permitflow.Actor, id, fileID string) (file *models.File, err error)
}

// TxFunc runs fn with stores bound to one database transaction.
type TxFunc func(fn func(store jobpermitstore.Provider, history permithistory.Provider) error) error

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithStore(
		jobpermitstore.NewInstance(db.DB),
		permithistory.Instance,
		departmentprovider.Instance,
		filestorage.Instance,
		notification.Instance,
		dbTx,
	)
}

func dbTx(fn func(store jobpermitstore.Provider, history permithistory.Provider) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(jobpermitstore.NewInstance(tx), permithistory.NewHandlerWithTx(tx))
	})
}

func NewHandlerWithStore(store jobpermitstore.Provider, history permithistory.Provider, departments departmentprovider.Provider,
	files filestorage.Provider, notifier notification.Provider, inTx TxFunc) Provider {
	instance := impl{
		store:       store,
		history:     history,
		departments: departments,
		files:       files,
		notifier:    notifier,
		inTx:        inTx,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"history", instance.history,
		"departments", instance.departments,
		"files", instance.files,
		"notifier", instance.notifier,
		"inTx", instance.inTx,
	)
	return instance
}

type impl struct {
	store       jobpermitstore.Provider
	history     permithistory.Provider
	departments departmentprovider.Provider
	files       filestorage.Provider
	notifier    notification.Provider
	inTx        TxFunc
}

func (i impl) Create(actor permitflow.Actor, data permitapimodels.JobPermitData) (*permitapimodels.JobPermitView, string, error) {
	logger := log.WithField("user_id", actor.UserID)
	department, err := i.departments.Get(strings.ToUpper(strings.TrimSpace(data.DepartmentCode)))
	if err != nil {
		return nil, "", err
	}
	if department == nil {
		return nil, "department not found", nil
	}
	rec := dbmodels.JobPermit{
		PermitNumber:    helpers.PermitNumber("JP", time.Now()),
		Department:      department.Name,
		DepartmentCode:  department.Code,
		JobLocation:     strings.TrimSpace(data.JobLocation),
		SubLocation:     strings.TrimSpace(data.SubLocation),
		JobDescription:  strings.TrimSpace(data.JobDescription),
		WorkersNames:    helpers.TrimList(data.WorkersNames),
		CreatorID:       actor.UserID,
		CreatorName:     actor.Name,
		PermitApprovals: permitflow.NewApprovals(),
	}
	after := toPermit(rec)
	err = i.inTx(func(store jobpermitstore.Provider, history permithistory.Provider) error {
		rec.ID, err = store.Create(rec)
		if err != nil {
			return errors.Wrap(err, "error creating job permit")
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
		logger.WithError(err).Error("error creating job permit")
		return nil, "", err
	}
	logger.
		WithField("permit_id", rec.ID).
		WithField("permit_number", rec.PermitNumber).
		Info("job permit created")
	metrics.RecordTransition(string(kind), string(models.ActionCreated))
	permitaction.Notify(i.notifier, permitaction.NewEvent(models.EventPermitCreated, ref(rec), actor, "", after))
	view := i.convert(actor, rec)
	return &view, "", nil
}

func (i impl) Get(actor permitflow.Actor, id string) (*permitapimodels.JobPermitView, error) {
	rec, err := i.getVisible(actor, id)
	if err != nil {
		return nil, err
	}
	view := i.convert(actor, *rec)
	return &view, nil
}

func (i impl) List(actor permitflow.Actor, filter permitapimodels.PermitFilter, pagination apimodels.Pagination) ([]permitapimodels.JobPermitView, int64, error) {
	visible, err := i.ListVisible(actor, filter)
	if err != nil {
		return nil, 0, err
	}
	from, to := pagination.Slice(len(visible))
	list := make([]permitapimodels.JobPermitView, 0, to-from)
	for _, rec := range visible[from:to] {
		list = append(list, i.convert(actor, rec))
	}
	return list, int64(len(visible)), nil
}

func (i impl) ListVisible(actor permitflow.Actor, filter permitapimodels.PermitFilter) ([]dbmodels.JobPermit, error) {
	storeFilter := jobpermitstore.Filter{
		Status:     filter.Status,
		AssignedTo: filter.AssignedTo,
		Department: filter.Department,
		Search:     filter.Search,
	}
	if filter.OnlyMine {
		storeFilter.CreatorID = actor.UserID
	}
	recList, err := i.store.List(storeFilter)
	if err != nil {
		return nil, errors.Wrap(err, "error getting job permit list")
	}
	departmentMap, err := i.departments.DepartmentMap()
	if err != nil {
		return nil, err
	}
	return permitflow.ResolveVisible(permitaction.Viewer(actor), recList, departmentMap), nil
}

func (i impl) Approve(ctx context.Context, actor permitflow.Actor, id, comments string) (*permitapimodels.JobPermitView, error) {
	return i.decide(ctx, actor, id, true, comments)
}

func (i impl) Reject(ctx context.Context, actor permitflow.Actor, id, comments string) (*permitapimodels.JobPermitView, error) {
	return i.decide(ctx, actor, id, false, comments)
}

func (i impl) decide(ctx context.Context, actor permitflow.Actor, id string, approve bool, comments string) (*permitapimodels.JobPermitView, error) {
	change := func(p permitflow.Permit) (permitflow.Permit, models.UserRole, error) {
		stage := p.Approvals.AssignedTo
		res, err := permitflow.ApplyDecision(p, actor, permitflow.Decision{Approve: approve, Comments: comments, At: time.Now()})
		return res, stage, err
	}
	return i.transition(ctx, actor, id, permitaction.DecisionAction(approve), comments, change)
}

func (i impl) Revoke(ctx context.Context, actor permitflow.Actor, id, reason string) (*permitapimodels.JobPermitView, error) {
	change := func(p permitflow.Permit) (permitflow.Permit, models.UserRole, error) {
		res, err := permitflow.InitiateRevocation(p, actor, reason, time.Now())
		return res, "", err
	}
	return i.transition(ctx, actor, id, models.ActionRevocationInitiated, reason, change)
}

func (i impl) ReviewRevocation(ctx context.Context, actor permitflow.Actor, id string, approve bool, comments string) (*permitapimodels.JobPermitView, error) {
	change := func(p permitflow.Permit) (permitflow.Permit, models.UserRole, error) {
		res, err := permitflow.ReviewRevocation(p, actor, approve, comments, time.Now())
		return res, models.RoleQHSSE, err
	}
	return i.transition(ctx, actor, id, permitaction.ReviewAction(approve), comments, change)
}

// transition applies change to the stored permit under the permit lock and
// commits it only if nobody moved the permit meanwhile.
func (i impl) transition(ctx context.Context, actor permitflow.Actor, id string, action models.PermitAction, comment string,
	change func(p permitflow.Permit) (permitflow.Permit, models.UserRole, error)) (*permitapimodels.JobPermitView, error) {
	logger := log.WithFields(log.Fields{
		"permit_id": id,
		"user_id":   actor.UserID,
		"action":    action,
	})
	var rec *dbmodels.JobPermit
	var after permitflow.Permit
	err := permitaction.WithPermitLock(ctx, kind, id, func() (err error) {
		rec, err = i.getVisible(actor, id)
		if err != nil {
			return err
		}
		before := toPermit(*rec)
		var stage models.UserRole
		after, stage, err = change(before)
		if err != nil {
			return err
		}
		return i.inTx(func(store jobpermitstore.Provider, history permithistory.Provider) error {
			updMap := dbmodels.LifecycleUpdMap(after.Approvals, after.Revocation, nil)
			updated, err := store.UpdateIfState(id, before.Approvals.Status, before.Approvals.AssignedTo, updMap)
			if err != nil {
				return errors.Wrap(err, "error updating job permit")
			}
			if !updated {
				return permitaction.Conflict(kind)
			}
			return history.Save(permithistory.Entry{
				Kind:     kind,
				PermitID: id,
				Actor:    actor,
				Action:   action,
				Stage:    stage,
				Comment:  strings.TrimSpace(comment),
				Before:   &before,
				After:    &after,
			})
		})
	})
	if err != nil {
		if _, ok := permitflow.AsError(err); ok {
			logger.WithError(err).Info("job permit transition refused")
		} else {
			logger.WithError(err).Error("error changing job permit")
		}
		return nil, err
	}
	logger.WithField("status", after.Approvals.Status).Info("job permit changed")
	metrics.RecordTransition(string(kind), string(action))

	rec.PermitApprovals = after.Approvals
	rec.PermitRevocation = after.Revocation
	event := permitaction.NewEvent(permitaction.StatusEvent(kind, after), ref(*rec), actor, strings.TrimSpace(comment), after)
	permitaction.Notify(i.notifier, event)
	view := i.convert(actor, *rec)
	return &view, nil
}

func (i impl) History(actor permitflow.Actor, id string) ([]permitapimodels.HistoryView, error) {
	if _, err := i.getVisible(actor, id); err != nil {
		return nil, err
	}
	return i.history.List(kind, id)
}

func (i impl) AddAttachment(ctx context.Context, actor permitflow.Actor, id string, file filestorage.UploadFile) (*permitapimodels.AttachmentView, string, error) {
	if _, err := i.getVisible(actor, id); err != nil {
		return nil, "", err
	}
	view, hMsg, err := i.files.Upload(ctx, id, actor.UserID, file)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}
	err = i.history.Save(permithistory.Entry{
		Kind:     kind,
		PermitID: id,
		Actor:    actor,
		Action:   models.ActionAttachmentAdded,
		Comment:  view.FileName,
	})
	if err != nil {
		log.WithError(err).WithField("permit_id", id).Warn("error saving attachment history")
	}
	return view, "", nil
}

func (i impl) ListAttachments(actor permitflow.Actor, id string) ([]permitapimodels.AttachmentView, error) {
	if _, err := i.getVisible(actor, id); err != nil {
		return nil, err
	}
	return i.files.List(id)
}

func (i impl) GetAttachment(ctx context.Context, actor permitflow.Actor, id, fileID string) (*models.File, error) {
	if _, err := i.getVisible(actor, id); err != nil {
		return nil, err
	}
	file, err := i.files.Download(ctx, id, fileID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, permitflow.NewError(permitflow.CodeNotFound, "attachment not found")
	}
	return file, nil
}

func (i impl) getVisible(actor permitflow.Actor, id string) (*dbmodels.JobPermit, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "error getting job permit")
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

func (i impl) convert(actor permitflow.Actor, rec dbmodels.JobPermit) permitapimodels.JobPermitView {
	view := permitapimodels.JobPermitConvert(rec)
	p := toPermit(rec)
	view.Actions = permitapimodels.Actions{
		CanAct:              permitflow.CanAct(actor, p),
		CanRevoke:           permitflow.CanInitiateRevocation(actor, p),
		CanReviewRevocation: permitflow.CanReviewRevocation(actor, p),
		CanCreatePTW:        CanCreatePTW(actor, rec) == nil,
	}
	return view
}

// CanCreatePTW checks that actor may request a permit to work under rec:
// the job permit is approved and actor is its creator or an issuer of its department.
func CanCreatePTW(actor permitflow.Actor, rec dbmodels.JobPermit) error {
	p := toPermit(rec)
	if rec.Status == models.PermitRevoked {
		return permitflow.NewError(permitflow.CodeAlreadyRevoked, "job permit is revoked")
	}
	if rec.Status != models.PermitApproved || p.IsLocked() {
		return permitflow.NewError(permitflow.CodeInvalidState, "permit to work can only be created from an approved job permit")
	}
	if actor.UserID == rec.CreatorID {
		return nil
	}
	if actor.Role == models.RoleIssuer && strings.EqualFold(actor.Department, rec.DepartmentCode) {
		return nil
	}
	return permitflow.NewError(permitflow.CodeForbidden, "only the job permit creator or an issuer of its department can create a permit to work")
}

func toPermit(rec dbmodels.JobPermit) permitflow.Permit {
	return permitflow.Permit{
		Approvals:  rec.PermitApprovals,
		Revocation: rec.PermitRevocation,
	}
}

func ref(rec dbmodels.JobPermit) permitaction.PermitRef {
	return permitaction.PermitRef{
		Kind:           kind,
		ID:             rec.ID,
		Number:         rec.PermitNumber,
		DepartmentCode: rec.DepartmentCode,
		Department:     rec.Department,
		CreatorID:      rec.CreatorID,
	}
}
