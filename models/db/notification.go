package dbmodels

import (
	"ptw-backend/models"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Notification is an outbox record, one per finalized permit transition.
type Notification struct {
	BaseModel
	Event      models.NotificationEvent `gorm:"type:varchar(40)"`
	PermitKind models.PermitKind        `gorm:"type:varchar(20)"`
	PermitID   string                   `gorm:"type:varchar(36);index"`
	Recipients pq.StringArray           `gorm:"type:text[]"`
	Subject    string                   `gorm:"type:varchar(255)"`
	Body       string
	Text       string
	Data       datatypes.JSONMap        `gorm:"type:jsonb"`
	State      models.NotificationState `gorm:"type:varchar(20);index"`
	Attempts   int
	LastError  string
	SentAt     *time.Time
}
