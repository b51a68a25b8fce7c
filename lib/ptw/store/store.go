package ptwstore

import (
	"ptw-backend/models"
	dbmodels "ptw-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filter struct {
	JobPermitID      string
	Status           models.PermitStatus
	AssignedTo       models.UserRole
	CompletionStatus models.CompletionStatus
	Department       string
	CreatorID        string
	Search           string
}

type Provider interface {
	Create(rec dbmodels.PermitToWork) (id string, err error)
	GetByID(id string) (rec *dbmodels.PermitToWork, err error)
	// UpdateIfState applies updMap only while the permit still has the given status, assignee and completion status.
	UpdateIfState(id string, status models.PermitStatus, assignedTo models.UserRole, completion models.CompletionStatus, updMap map[string]interface{}) (updated bool, err error)
	List(filter Filter) (list []dbmodels.PermitToWork, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.PermitToWork) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.PermitToWork, error) {
	rec := dbmodels.PermitToWork{}
	err := i.db.
		Where("id = ?", id).
		Preload("JobPermit").
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

func (i impl) UpdateIfState(id string, status models.PermitStatus, assignedTo models.UserRole, completion models.CompletionStatus, updMap map[string]interface{}) (bool, error) {
	if len(updMap) == 0 {
		return true, nil
	}
	tx := i.db.
		Model(&dbmodels.PermitToWork{}).
		Where("id = ?", id).
		Where("status = ?", status).
		Where("assigned_to = ?", assignedTo).
		Where("completion_status = ?", completion).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}

func (i impl) List(filter Filter) (list []dbmodels.PermitToWork, err error) {
	list = []dbmodels.PermitToWork{}
	tx := i.db.Model(&dbmodels.PermitToWork{}).Preload("JobPermit")
	if filter.JobPermitID != "" {
		tx = tx.Where("job_permit_id = ?", filter.JobPermitID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.AssignedTo != "" {
		tx = tx.Where("assigned_to = ?", filter.AssignedTo)
	}
	if filter.CompletionStatus != "" {
		tx = tx.Where("completion_status = ?", filter.CompletionStatus)
	}
	if filter.Department != "" {
		tx = tx.Where("department = ?", filter.Department)
	}
	if filter.CreatorID != "" {
		tx = tx.Where("creator_id = ?", filter.CreatorID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(permit_number) LIKE ? OR LOWER(job_location) LIKE ? OR LOWER(job_description) LIKE ?", like, like, like)
	}
	err = tx.Order("created_at desc").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
