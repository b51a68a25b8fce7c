package dbmodels

import "ptw-backend/models"

type PermitHistory struct {
	BaseModel
	PermitKind models.PermitKind   `gorm:"type:varchar(20);index:idx_permit_history"`
	PermitID   string              `gorm:"type:varchar(36);index:idx_permit_history"`
	UserID     string              `gorm:"type:varchar(36)"`
	UserName   string              `gorm:"type:varchar(255)"`
	UserRole   models.UserRole     `gorm:"type:varchar(10)"`
	Action     models.PermitAction `gorm:"type:varchar(40)"`
	Stage      models.UserRole     `gorm:"type:varchar(10)"`
	Comment    string
	Changes    EntityChanges `gorm:"type:jsonb"`
}
