package repository

import (
	"gorm.io/gorm"

	"github.com/zoec98/imageedit/database"
	"github.com/zoec98/imageedit/models"
)

// UploadRepository handles database operations for UploadedImage entities
type UploadRepository struct {
	DB *gorm.DB
}

// NewUploadRepository creates a new instance of UploadRepository
func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{DB: db}
}

// Create appends one upload record to the history
func (r *UploadRepository) Create(upload *models.UploadedImage) error {
	if err := r.DB.Create(upload).Error; err != nil {
		return database.NewStoreError("create upload", err)
	}
	return nil
}

// ListAll returns every recorded upload, newest first
func (r *UploadRepository) ListAll() ([]models.UploadedImage, error) {
	var uploads []models.UploadedImage
	err := r.DB.Order("upload_id DESC").Find(&uploads).Error
	if err != nil {
		return nil, database.NewStoreError("list uploads", err)
	}
	return uploads, nil
}

// ResolveURLs maps caller-supplied upload URLs back to upload ids.
// The lookup is a single bulk read; ids come back in the input's order,
// URLs with no matching upload are skipped, and duplicate input URLs
// repeat the same id once per occurrence. URLs are matched verbatim,
// with no normalization.
func (r *UploadRepository) ResolveURLs(urls []string) ([]uint, error) {
	if len(urls) == 0 {
		return []uint{}, nil
	}

	var rows []models.UploadedImage
	err := r.DB.Select("upload_id", "url").
		Where("url IN ?", urls).
		Order("upload_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, database.NewStoreError("resolve upload urls", err)
	}

	// later rows overwrite earlier ones, so a re-uploaded URL resolves
	// to its most recent id
	idByURL := make(map[string]uint, len(rows))
	for _, row := range rows {
		idByURL[row.URL] = row.UploadID
	}

	ids := make([]uint, 0, len(urls))
	for _, url := range urls {
		if id, ok := idByURL[url]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// DeleteByIDs removes uploads in one batch; ids with no matching row are
// a no-op, not an error
func (r *UploadRepository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.DB.Where("upload_id IN ?", ids).Delete(&models.UploadedImage{}).Error; err != nil {
		return database.NewStoreError("delete uploads", err)
	}
	return nil
}
