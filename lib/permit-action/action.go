package permitaction

import (
	"context"
	"time"

	"ptw-backend/lib/metrics"
	"ptw-backend/lib/notification"
	permitflow "ptw-backend/lib/permit-flow"
	"ptw-backend/lib/utils/lock"
	"ptw-backend/models"

	log "github.com/sirupsen/logrus"
)

// LockWait is how long a transition waits for another one on the same permit.
var LockWait = 5 * time.Second

// WithPermitLock serializes transitions of one permit inside this process.
func WithPermitLock(ctx context.Context, kind models.PermitKind, id string, fn func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ok, err := lock.WithDelay(ctx, lock.PermitKey(string(kind), id), LockWait, fn)
	if err != nil {
		return err
	}
	if !ok {
		metrics.RecordTransitionConflict(string(kind))
		return permitflow.NewError(permitflow.CodeInvalidState, "permit is being updated by another user, try again")
	}
	return nil
}

// Conflict is returned when the conditional update found the permit already changed.
func Conflict(kind models.PermitKind) error {
	metrics.RecordTransitionConflict(string(kind))
	return permitflow.NewError(permitflow.CodeInvalidState, "permit was changed by another user, reload it and try again")
}

func NotFound(kind models.PermitKind) error {
	return permitflow.NewError(permitflow.CodeNotFound, "%s not found", kind.ToHuman())
}

func Forbidden(kind models.PermitKind) error {
	return permitflow.NewError(permitflow.CodeForbidden, "%s is not available to you", kind.ToHuman())
}

func Viewer(actor permitflow.Actor) permitflow.Viewer {
	return permitflow.Viewer{UserID: actor.UserID, Role: actor.Role, DepartmentID: actor.Department}
}

func DecisionAction(approve bool) models.PermitAction {
	if approve {
		return models.ActionApproved
	}
	return models.ActionRejected
}

func ReviewAction(approve bool) models.PermitAction {
	if approve {
		return models.ActionRevocationApproved
	}
	return models.ActionRevocationRejected
}

// ApproverIDs lists the users who signed a stage of a.
func ApproverIDs(a models.PermitApprovals) []string {
	ids := []string{}
	for _, id := range []string{a.IssuerID, a.HODID, a.QHSSEID} {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// NextRole is the role the permit waits for: an approver, the revocation
// reviewer or the active completion step.
func NextRole(p permitflow.Permit) models.UserRole {
	if p.Approvals.AssignedTo != "" {
		return p.Approvals.AssignedTo
	}
	return permitflow.CompletionStage(p).Role()
}

// PermitRef identifies the stored permit an event is about.
type PermitRef struct {
	Kind           models.PermitKind
	ID             string
	Number         string
	DepartmentCode string
	Department     string
	CreatorID      string
}

// NewEvent builds the notification of a finished transition.
func NewEvent(name models.NotificationEvent, ref PermitRef, actor permitflow.Actor, comments string, p permitflow.Permit) notification.Event {
	event := notification.Event{
		Name:           name,
		Kind:           ref.Kind,
		PermitID:       ref.ID,
		PermitNumber:   ref.Number,
		Status:         p.Approvals.Status,
		NextRole:       NextRole(p),
		DepartmentCode: ref.DepartmentCode,
		Department:     ref.Department,
		Comments:       comments,
		ActorName:      actor.Name,
		CreatorID:      ref.CreatorID,
		ApproverIDs:    ApproverIDs(p.Approvals),
		At:             time.Now(),
	}
	if p.Completion != nil {
		event.Completion = p.Completion.CompletionStatus
	}
	return event
}

// StatusEvent picks the event of a transition that is not a creation.
func StatusEvent(kind models.PermitKind, p permitflow.Permit) models.NotificationEvent {
	if p.Approvals.Status == models.PermitRevoked {
		return models.EventPermitRevoked
	}
	if kind == models.KindPermitToWork {
		if p.Completion != nil && p.Completion.CompletionStatus == models.CompletionJobComplete {
			return models.EventPTWCompleted
		}
		return models.EventPTWStatusUpdate
	}
	return models.EventPermitStatusUpdate
}

// Notify hands a committed transition to the notifier. The transition stays
// committed when notifying fails.
func Notify(notifier notification.Provider, event notification.Event) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(event); err != nil {
		log.WithError(err).
			WithField("event", event.Name).
			WithField("permit_id", event.PermitID).
			Warn("error sending permit notification")
	}
}
