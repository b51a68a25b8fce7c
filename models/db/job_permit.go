package dbmodels

import (
	"ptw-backend/models"

	"github.com/lib/pq"
)

type JobPermit struct {
	BaseModel
	PermitNumber   string         `gorm:"type:varchar(40);uniqueIndex"`
	Department     string         `gorm:"type:varchar(255);index"`
	DepartmentCode string         `gorm:"type:varchar(20)"`
	JobLocation    string         `gorm:"type:varchar(255)"`
	SubLocation    string         `gorm:"type:varchar(255)"`
	JobDescription string
	WorkersNames   pq.StringArray `gorm:"type:text[]"`
	CreatorID      string         `gorm:"type:varchar(36);index"`
	Creator        *User          `gorm:"foreignKey:CreatorID"`
	CreatorName    string         `gorm:"type:varchar(255)"`
	models.PermitApprovals
	models.PermitRevocation
	PermitsToWork []PermitToWork     `gorm:"foreignKey:JobPermitID"`
	Attachments   []PermitAttachment `gorm:"foreignKey:PermitID"`
}

func (r JobPermit) VisibilityKey() (string, models.UserRole) {
	return r.Department, r.AssignedTo
}

func (r JobPermit) OwnerID() string {
	return r.CreatorID
}
