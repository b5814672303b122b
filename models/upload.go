package models

// UploadedImage represents a source image that was uploaded to the
// generation provider and is reachable at an external URL.
// It corresponds to the 'uploaded_images' table.
type UploadedImage struct {
	UploadID   uint   `gorm:"column:upload_id;primaryKey;autoIncrement" json:"upload_id"`
	Filename   string `gorm:"not null" json:"filename"`
	UploadedAt int64  `gorm:"not null" json:"uploaded_at"` // Unix timestamp
	URL        string `gorm:"column:url;not null" json:"url"`
}

// TableName explicitly sets the table name for GORM.
func (UploadedImage) TableName() string {
	return "uploaded_images"
}
