package dbmodels

import (
	"fmt"
	"ptw-backend/models"
	"strings"
	"time"
)

type User struct {
	BaseModel
	Password     string          `gorm:"type:varchar(128)"`
	FirstName    string          `gorm:"type:varchar(150)"`
	LastName     string          `gorm:"type:varchar(150)"`
	Email        string          `gorm:"type:varchar(255);uniqueIndex"`
	PhoneNumber  string          `gorm:"type:varchar(20)"`
	RoleID       models.UserRole `gorm:"type:varchar(10);index"`
	DepartmentID string          `gorm:"type:varchar(20);index"`
	Department   *Department     `gorm:"foreignKey:DepartmentID;references:Code"`
	IsActive     bool
	LastLogin    *time.Time
}

func (r User) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", r.FirstName, r.LastName))
}

// IsExternal reports whether the user email is outside the corporate domain.
func (r User) IsExternal(corporateDomain string) bool {
	if corporateDomain == "" {
		return false
	}
	domain := "@" + strings.TrimPrefix(strings.ToLower(corporateDomain), "@")
	return !strings.HasSuffix(strings.ToLower(r.Email), domain)
}
