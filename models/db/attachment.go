package dbmodels

type PermitAttachment struct {
	BaseModel
	PermitID     string `gorm:"type:varchar(36);index"`
	FileName     string `gorm:"type:varchar(255)"`
	ContentType  string `gorm:"type:varchar(100)"`
	Size         int64
	ObjectKey    string `gorm:"type:varchar(255)"`
	UploadedByID string `gorm:"type:varchar(36)"`
}
