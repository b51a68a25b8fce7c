package permitapimodels

import (
	"ptw-backend/models"
	dbmodels "ptw-backend/models/db"
	"time"
)

type HistoryView struct {
	ID         string                  `json:"id"`
	Date       time.Time               `json:"date"`
	UserID     string                  `json:"user_id"`
	UserName   string                  `json:"user_name"`
	UserRole   models.UserRole         `json:"user_role"`
	Action     models.PermitAction     `json:"action"`
	ActionName string                  `json:"action_name"`
	Stage      models.UserRole         `json:"stage,omitempty"`
	Comment    string                  `json:"comment,omitempty"`
	Changes    []dbmodels.FieldChanges `json:"changes,omitempty"`
}

func HistoryConvert(rec dbmodels.PermitHistory) HistoryView {
	return HistoryView{
		ID:         rec.ID,
		Date:       rec.CreatedAt,
		UserID:     rec.UserID,
		UserName:   rec.UserName,
		UserRole:   rec.UserRole,
		Action:     rec.Action,
		ActionName: rec.Action.ToHuman(),
		Stage:      rec.Stage,
		Comment:    rec.Comment,
		Changes:    rec.Changes.Data,
	}
}

type AttachmentView struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func AttachmentConvert(rec dbmodels.PermitAttachment) AttachmentView {
	return AttachmentView{
		ID:          rec.ID,
		FileName:    rec.FileName,
		ContentType: rec.ContentType,
		Size:        rec.Size,
		UploadedAt:  rec.CreatedAt,
	}
}
