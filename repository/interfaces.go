package repository

import (
	"github.com/zoec98/imageedit/models"
)

// UploadRepositoryInterface defines the methods for upload history operations
type UploadRepositoryInterface interface {
	Create(upload *models.UploadedImage) error
	ListAll() ([]models.UploadedImage, error)
	ResolveURLs(urls []string) ([]uint, error)
	DeleteByIDs(ids []uint) error
}

// GenerationRepositoryInterface defines the methods for generation history operations
type GenerationRepositoryInterface interface {
	CreateWithImages(request *models.GenerationRequest, images []models.GeneratedImage) (uint, error)
	GetByID(requestID uint) (*models.GenerationRequest, error)
	ListAll() ([]models.GenerationRequest, error)
	ListImagesByRequestID(requestID uint) ([]models.GeneratedImage, error)
	Delete(requestID uint) error
}
