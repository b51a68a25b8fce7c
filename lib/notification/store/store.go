package notificationstore

import (
	"time"

	"ptw-backend/models"
	dbmodels "ptw-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Notification) (string, error)
	// ListPending returns up to limit pending records, oldest first.
	ListPending(limit int) (list []dbmodels.Notification, err error)
	MarkSent(id string, at time.Time) error
	MarkFailed(id string, attempts int, lastError string, final bool) error
	CountPending() (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (string, error) {
	err := i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListPending(limit int) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	tx := i.db.
		Where("state = ?", models.NotificationPending).
		Order("created_at")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkSent(id string, at time.Time) error {
	updMap := map[string]interface{}{
		"State":     models.NotificationSent,
		"SentAt":    at,
		"LastError": "",
	}
	return i.update(id, updMap)
}

func (i impl) MarkFailed(id string, attempts int, lastError string, final bool) error {
	updMap := map[string]interface{}{
		"Attempts":  attempts,
		"LastError": lastError,
	}
	if final {
		updMap["State"] = models.NotificationFailed
	}
	return i.update(id, updMap)
}

func (i impl) CountPending() (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("state = ?", models.NotificationPending).
		Count(&count).
		Error
	return count, err
}

func (i impl) update(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}
