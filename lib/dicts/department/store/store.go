package departmentstore

import (
	dbmodels "ptw-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Department) error
	GetByCode(code string) (rec *dbmodels.Department, err error)
	Update(code string, updMap map[string]interface{}) error
	Delete(code string) error
	List() (list []dbmodels.Department, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Department) error {
	return i.db.Create(&rec).Error
}

func (i impl) GetByCode(code string) (*dbmodels.Department, error) {
	rec := dbmodels.Department{}
	err := i.db.
		Where("code = ?", code).
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

func (i impl) Update(code string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Department{}).
		Where("code = ?", code).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("department not found")
	}
	return nil
}

func (i impl) Delete(code string) error {
	return i.db.
		Where("code = ?", code).
		Delete(&dbmodels.Department{}).
		Error
}

func (i impl) List() (list []dbmodels.Department, err error) {
	list = []dbmodels.Department{}
	err = i.db.Order("name").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
