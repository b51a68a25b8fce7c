package permithistorystore

import (
	"ptw-backend/models"
	dbmodels "ptw-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Save(rec dbmodels.PermitHistory) error
	List(kind models.PermitKind, permitID string) (list []dbmodels.PermitHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.PermitHistory) error {
	return i.db.Save(&rec).Error
}

func (i impl) List(kind models.PermitKind, permitID string) (list []dbmodels.PermitHistory, err error) {
	list = []dbmodels.PermitHistory{}
	err = i.db.
		Where("permit_kind = ?", kind).
		Where("permit_id = ?", permitID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
