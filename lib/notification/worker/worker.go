package notificationworker

import (
	"context"
	"time"

	"ptw-backend/config"
	"ptw-backend/db"
	"ptw-backend/lib/metrics"
	notificationstore "ptw-backend/lib/notification/store"
	"ptw-backend/lib/smtp"
	baseworker "ptw-backend/lib/utils/base-worker"
	"ptw-backend/lib/utils/helpers"
	"ptw-backend/models"

	log "github.com/sirupsen/logrus"
)

const (
	workerName    = "notification_sender"
	firstRunDelay = 10 * time.Second
)

type impl struct {
	*baseworker.BaseImpl
	store       notificationstore.Provider
	sender      smtp.Provider
	batchSize   int
	maxAttempts int
}

func StartWorker(ctx context.Context) {
	conf := config.Conf.Notification
	i := New(notificationstore.NewInstance(db.DB), smtp.Instance, conf.BatchSize, conf.MaxAttempts)
	interval := time.Duration(conf.IntervalSec) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	i.BaseImpl = baseworker.NewInstance(workerName, firstRunDelay, interval)
	i.Run(ctx, i.handle)
}

func New(store notificationstore.Provider, sender smtp.Provider, batchSize, maxAttempts int) *impl {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &impl{
		BaseImpl:    baseworker.NewInstance(workerName, firstRunDelay, time.Minute),
		store:       store,
		sender:      sender,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
	}
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	if i.sender == nil || !i.sender.IsConfigured() {
		logger.Debug("smtp is not configured, sending skipped")
		return
	}
	list, err := i.store.ListPending(i.batchSize)
	if err != nil {
		logger.WithError(err).Error("error getting pending notifications")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			return
		}
		recLogger := logger.WithFields(log.Fields{
			"notification_id": rec.ID,
			"event":           rec.Event,
		})
		err = i.sender.SendHTML(rec.Recipients, rec.Subject, rec.Body, rec.Text)
		if err != nil {
			attempts := rec.Attempts + 1
			final := attempts >= i.maxAttempts
			recLogger.WithError(err).WithField("attempts", attempts).Warn("error sending notification")
			if err = i.store.MarkFailed(rec.ID, attempts, err.Error(), final); err != nil {
				recLogger.WithError(err).Error("error marking notification as failed")
			}
			if final {
				metrics.RecordNotification(string(rec.Event), string(models.NotificationFailed))
			}
			continue
		}
		if err = i.store.MarkSent(rec.ID, time.Now()); err != nil {
			recLogger.WithError(err).Error("error marking notification as sent")
			continue
		}
		metrics.RecordNotification(string(rec.Event), string(models.NotificationSent))
	}
	count, err := i.store.CountPending()
	if err != nil {
		logger.WithError(err).Error("error counting pending notifications")
		return
	}
	metrics.SetNotificationsPending(int(count))
}
