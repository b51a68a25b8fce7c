package dbmodels

import (
	"time"

	"github.com/pkg/errors"
)

type Department struct {
	Code      string `gorm:"primaryKey;type:varchar(20)"`
	Name      string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *Department) Validate() error {
	if d.Code == "" {
		return errors.New("department code is required")
	}
	if d.Name == "" {
		return errors.New("department name is required")
	}
	return nil
}
