package models

// GenerationRequest records one completed invocation of the image
// generation provider. Rows are append-only and never updated.
// It corresponds to the 'generation_requests' table.
type GenerationRequest struct {
	RequestID             uint    `gorm:"column:request_id;primaryKey;autoIncrement" json:"request_id"`
	Prompt                string  `gorm:"not null" json:"prompt"`
	Endpoint              string  `gorm:"" json:"endpoint"`
	Model                 string  `gorm:"" json:"model"`
	Seed                  *int64  `gorm:"" json:"seed,omitempty"`       // Nullable
	ImageSize             *string `gorm:"" json:"image_size,omitempty"` // Nullable, literal size or aspect-ratio token
	PromptJSON            *string `gorm:"column:prompt_json" json:"prompt_json,omitempty"`
	UploadIDsJSON         string  `gorm:"column:upload_ids_json" json:"upload_ids_json"`
	GenerationStartedAt   int64   `gorm:"not null" json:"generation_started_at"`   // Unix timestamp
	GenerationCompletedAt int64   `gorm:"not null" json:"generation_completed_at"` // Unix timestamp

	// Relationships
	Images []GeneratedImage `gorm:"foreignKey:RequestID;references:RequestID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (GenerationRequest) TableName() string {
	return "generation_requests"
}

// GeneratedImage is one output image produced by a generation request.
// Ownership is strict: deleting the request cascades to its images.
// It corresponds to the 'generated_images' table.
type GeneratedImage struct {
	ImageID          uint   `gorm:"column:image_id;primaryKey;autoIncrement" json:"image_id"`
	RequestID        uint   `gorm:"column:request_id;not null;index" json:"request_id"`
	ImageFilename    string `gorm:"not null" json:"image_filename"`
	ImageDownloadURL string `gorm:"column:image_download_url;not null" json:"image_download_url"`
}

// TableName explicitly sets the table name for GORM.
func (GeneratedImage) TableName() string {
	return "generated_images"
}
