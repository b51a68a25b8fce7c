package dbmodels

import (
	"ptw-backend/models"
	"time"

	"github.com/lib/pq"
)

type PermitToWork struct {
	BaseModel
	PermitNumber   string         `gorm:"type:varchar(40);uniqueIndex"`
	JobPermitID    string         `gorm:"type:varchar(36);index"`
	JobPermit      *JobPermit     `gorm:"foreignKey:JobPermitID"`
	Department     string         `gorm:"type:varchar(255);index"`
	DepartmentCode string         `gorm:"type:varchar(20)"`
	JobLocation    string         `gorm:"type:varchar(255)"`
	SubLocation    string         `gorm:"type:varchar(255)"`
	JobDescription string
	WorkersNames   pq.StringArray `gorm:"type:text[]"`
	EntryDate      time.Time
	ExitDate       time.Time
	WorkDuration   int
	CreatorID      string `gorm:"type:varchar(36);index"`
	Creator        *User  `gorm:"foreignKey:CreatorID"`
	CreatorName    string `gorm:"type:varchar(255)"`
	models.PermitApprovals
	models.PermitCompletion
	models.PermitRevocation
}

func (r PermitToWork) VisibilityKey() (string, models.UserRole) {
	return r.Department, r.AssignedTo
}

func (r PermitToWork) OwnerID() string {
	return r.CreatorID
}
