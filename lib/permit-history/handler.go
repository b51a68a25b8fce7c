package permithistory

import (
	"ptw-backend/db"
	permitflow "ptw-backend/lib/permit-flow"
	permithistorystore "ptw-backend/lib/permit-history/store"
	"ptw-backend/models"
	permitapimodels "ptw-backend/models/api/permit"
	dbmodels "ptw-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Save(entry Entry) error
	List(kind models.PermitKind, permitID string) (list []permitapimodels.HistoryView, err error)
}

// Entry is one audit record of a permit transition.
type Entry struct {
	Kind     models.PermitKind
	PermitID string
	Actor    permitflow.Actor
	Action   models.PermitAction
	Stage    models.UserRole
	Comment  string
	Before   *permitflow.Permit
	After    *permitflow.Permit
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithTx(db.DB)
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return NewHandlerWithStore(permithistorystore.NewInstance(tx))
}

func NewHandlerWithStore(store permithistorystore.Provider) Provider {
	return impl{
		store: store,
	}
}

type impl struct {
	store permithistorystore.Provider
}

func (i impl) Save(entry Entry) error {
	rec := dbmodels.PermitHistory{
		PermitKind: entry.Kind,
		PermitID:   entry.PermitID,
		UserID:     entry.Actor.UserID,
		UserName:   entry.Actor.Name,
		UserRole:   entry.Actor.Role,
		Action:     entry.Action,
		Stage:      entry.Stage,
		Comment:    entry.Comment,
		Changes:    Changes(entry.Action, entry.Before, entry.After),
	}
	if rec.UserName == "" {
		rec.UserName = models.SystemUser
	}
	if err := i.store.Save(rec); err != nil {
		return errors.Wrap(err, "error saving permit history")
	}
	return nil
}

func (i impl) List(kind models.PermitKind, permitID string) (list []permitapimodels.HistoryView, err error) {
	recList, err := i.store.List(kind, permitID)
	if err != nil {
		return nil, errors.Wrap(err, "error getting permit history")
	}
	list = make([]permitapimodels.HistoryView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, permitapimodels.HistoryConvert(rec))
	}
	return list, nil
}

// Changes lists the lifecycle fields that moved between before and after.
func Changes(action models.PermitAction, before, after *permitflow.Permit) dbmodels.EntityChanges {
	changes := dbmodels.EntityChanges{
		Description: action.ToHuman(),
		Data:        []dbmodels.FieldChanges{},
	}
	if before == nil || after == nil {
		return changes
	}
	changes.AddChange("status", string(before.Approvals.Status), string(after.Approvals.Status))
	changes.AddChange("assigned_to", string(before.Approvals.AssignedTo), string(after.Approvals.AssignedTo))
	changes.AddChange("qhsse_revocation_status", string(before.Revocation.QHSSERevocationStatus), string(after.Revocation.QHSSERevocationStatus))
	if before.Completion != nil && after.Completion != nil {
		changes.AddChange("completion_status", string(before.Completion.CompletionStatus), string(after.Completion.CompletionStatus))
		changes.AddChange("issuer_completion_status", string(before.Completion.IssuerCompletionStatus), string(after.Completion.IssuerCompletionStatus))
	}
	return changes
}
