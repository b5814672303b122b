package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/zoec98/imageedit/database"
	"github.com/zoec98/imageedit/models"
)

// GenerationRepository handles database operations for GenerationRequest
// and GeneratedImage entities
type GenerationRepository struct {
	DB *gorm.DB
}

// NewGenerationRepository creates a new instance of GenerationRepository
func NewGenerationRepository(db *gorm.DB) *GenerationRepository {
	return &GenerationRepository{DB: db}
}

// CreateWithImages appends a generation request and its output images as
// one logical write. The request row is inserted first; if the insert does
// not yield an identifier the whole write is rolled back. An empty image
// batch is legal (a request may produce zero outputs). Nothing is
// deduplicated: calling this twice with identical inputs appends two
// independent history rows.
func (r *GenerationRepository) CreateWithImages(request *models.GenerationRequest, images []models.GeneratedImage) (uint, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(request).Error; err != nil {
			return database.NewStoreError("create generation request", err)
		}
		if request.RequestID == 0 {
			return database.NewStoreError("create generation request", errors.New("insert yielded no request id"))
		}

		if len(images) == 0 {
			return nil
		}
		for i := range images {
			images[i].RequestID = request.RequestID
		}
		if err := tx.Create(&images).Error; err != nil {
			return database.NewStoreError("create generated images", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return request.RequestID, nil
}

// GetByID retrieves a generation request with its images preloaded
func (r *GenerationRepository) GetByID(requestID uint) (*models.GenerationRequest, error) {
	var request models.GenerationRequest
	err := r.DB.Preload("Images").Where("request_id = ?", requestID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, database.NewStoreError("get generation request", err)
	}
	return &request, nil
}

// ListAll returns every recorded generation request, newest first
func (r *GenerationRepository) ListAll() ([]models.GenerationRequest, error) {
	var requests []models.GenerationRequest
	err := r.DB.Order("request_id DESC").Find(&requests).Error
	if err != nil {
		return nil, database.NewStoreError("list generation requests", err)
	}
	return requests, nil
}

// ListImagesByRequestID returns the output images of one request, in
// insertion order
func (r *GenerationRepository) ListImagesByRequestID(requestID uint) ([]models.GeneratedImage, error) {
	var images []models.GeneratedImage
	err := r.DB.Where("request_id = ?", requestID).Order("image_id ASC").Find(&images).Error
	if err != nil {
		return nil, database.NewStoreError("list generated images", err)
	}
	return images, nil
}

// Delete removes a generation request; its images go with it via the
// foreign key cascade
func (r *GenerationRepository) Delete(requestID uint) error {
	result := r.DB.Where("request_id = ?", requestID).Delete(&models.GenerationRequest{})
	if result.Error != nil {
		return database.NewStoreError("delete generation request", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
