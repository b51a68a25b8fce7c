package notification

import (
	"time"

	"ptw-backend/config"
	"ptw-backend/db"
	notificationstore "ptw-backend/lib/notification/store"
	usersstore "ptw-backend/lib/users/store"
	initchecker "ptw-backend/lib/utils/init-checker"
	connectionhub "ptw-backend/lib/ws/hub/connection-hub"
	"ptw-backend/models"
	dbmodels "ptw-backend/models/db"
	wsmodels "ptw-backend/models/ws"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type Provider interface {
	// Notify queues the mail of event and pushes it to online recipients.
	Notify(event Event) error
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithStore(
		notificationstore.NewInstance(db.DB),
		usersstore.NewInstance(db.DB),
		connectionhub.Instance,
		config.Conf.App.BaseURL,
		config.Conf.Notification.Enabled == nil || *config.Conf.Notification.Enabled,
	)
}

func NewHandlerWithStore(store notificationstore.Provider, usersStore usersstore.Provider, hub connectionhub.Provider, baseURL string, emailEnabled bool) Provider {
	instance := impl{
		store:        store,
		usersStore:   usersStore,
		hub:          hub,
		baseURL:      baseURL,
		emailEnabled: emailEnabled,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"usersStore", instance.usersStore,
		"hub", instance.hub,
	)
	return instance
}

type impl struct {
	store        notificationstore.Provider
	usersStore   usersstore.Provider
	hub          connectionhub.Provider
	baseURL      string
	emailEnabled bool
}

func (i impl) Notify(event Event) error {
	logger := log.WithFields(log.Fields{
		"event":     event.Name,
		"kind":      event.Kind,
		"permit_id": event.PermitID,
	})
	if event.At.IsZero() {
		event.At = time.Now()
	}
	candidates, err := i.candidates(event)
	if err != nil {
		return err
	}
	recipients := UsersToNotify(event, candidates)
	if len(recipients) == 0 {
		logger.Info("no recipients for notification")
		return nil
	}
	data := event.Data(i.baseURL)
	subject, body, text, err := Render(event.Name, data)
	if err != nil {
		return err
	}
	i.push(event, subject, recipients)
	if !i.emailEnabled {
		return nil
	}
	rec := dbmodels.Notification{
		Event:      event.Name,
		PermitKind: event.Kind,
		PermitID:   event.PermitID,
		Recipients: Emails(recipients),
		Subject:    subject,
		Body:       body,
		Text:       text,
		Data:       toJSONMap(data),
		State:      models.NotificationPending,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return errors.Wrap(err, "error saving notification")
	}
	logger.
		WithField("notification_id", id).
		WithField("recipients", len(recipients)).
		Info("notification queued")
	return nil
}

func (i impl) candidates(event Event) ([]dbmodels.User, error) {
	candidates := []dbmodels.User{}
	if event.NextRole != "" {
		list, err := i.usersStore.ListActiveByRoles([]models.UserRole{event.NextRole})
		if err != nil {
			return nil, errors.Wrap(err, "error getting users by role")
		}
		candidates = append(candidates, list...)
	}
	for _, id := range event.PersonIDs() {
		rec, err := i.usersStore.GetByID(id)
		if err != nil {
			return nil, errors.Wrap(err, "error getting user")
		}
		if rec != nil {
			candidates = append(candidates, *rec)
		}
	}
	return candidates, nil
}

func (i impl) push(event Event, subject string, recipients []dbmodels.User) {
	sentTo := map[string]bool{}
	for _, user := range recipients {
		if sentTo[user.ID] || !i.hub.IsConnected(user.ID) {
			continue
		}
		sentTo[user.ID] = true
		i.hub.SendMessage(wsmodels.ServerMessage{
			ToUserID: user.ID,
			Time:     event.At.Format(time.RFC3339),
			Code:     string(event.Name),
			Msg:      subject,
			PermitID: event.PermitID,
		})
	}
}

func toJSONMap(data map[string]string) datatypes.JSONMap {
	result := datatypes.JSONMap{}
	for k, v := range data {
		result[k] = v
	}
	return result
}
