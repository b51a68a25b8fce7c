package filesdbstorage

import (
	dbmodels "ptw-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	SaveFile(rec dbmodels.PermitAttachment) (id string, err error)
	GetFile(permitID, fileID string) (rec *dbmodels.PermitAttachment, err error)
	GetFileList(permitID string) (list []dbmodels.PermitAttachment, err error)
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetFileList(permitID string) (list []dbmodels.PermitAttachment, err error) {
	list = []dbmodels.PermitAttachment{}
	err = i.db.
		Model(&dbmodels.PermitAttachment{}).
		Where("permit_id = ?", permitID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetFile(permitID, fileID string) (*dbmodels.PermitAttachment, error) {
	rec := dbmodels.PermitAttachment{}
	err := i.db.
		Model(&dbmodels.PermitAttachment{}).
		Where("permit_id = ? AND id = ?", permitID, fileID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) SaveFile(rec dbmodels.PermitAttachment) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func NewInstance(db *gorm.DB) Provider {
	return &impl{db: db}
}
