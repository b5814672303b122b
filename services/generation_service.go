package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/zoec98/imageedit/imagegen"
	"github.com/zoec98/imageedit/media"
	"github.com/zoec98/imageedit/models"
	"github.com/zoec98/imageedit/repository"
)

// GenerationService runs one generation against the provider and records
// the outcome in history. Failed provider calls leave no history rows.
type GenerationService struct {
	Uploads     repository.UploadRepositoryInterface
	Generations repository.GenerationRepositoryInterface
	Provider    imagegen.Provider
	Archiver    *media.Archiver // optional, nil disables local archiving
	Now         func() time.Time
}

// NewGenerationService wires a generation service over the given
// repositories and provider.
func NewGenerationService(uploads repository.UploadRepositoryInterface, generations repository.GenerationRepositoryInterface, provider imagegen.Provider, archiver *media.Archiver) *GenerationService {
	return &GenerationService{
		Uploads:     uploads,
		Generations: generations,
		Provider:    provider,
		Archiver:    archiver,
		Now:         time.Now,
	}
}

// GenerateInput is one caller-facing generation request.
type GenerateInput struct {
	Model     string   `json:"model"`
	Prompt    string   `json:"prompt"`
	ImageSize string   `json:"image_size,omitempty"`
	Seed      *int64   `json:"seed,omitempty"`
	ImageURLs []string `json:"image_urls,omitempty"`
}

// GenerateOutput reports a recorded generation back to the caller.
type GenerateOutput struct {
	RequestID uint                    `json:"request_id"`
	Images    []models.GeneratedImage `json:"images"`
	Message   string                  `json:"message"`
}

// Generate validates the input against the model registry, invokes the
// provider, and appends the request plus its output images to history as
// one write. Provider failures surface as *GenerationError with no
// history side effects; storage failures after a successful provider call
// propagate as store errors.
func (s *GenerationService) Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error) {
	model, err := imagegen.LookupModel(input.Model)
	if err != nil {
		return nil, &GenerationError{Reason: "invalid model", Err: err}
	}
	if len(input.ImageURLs) > 0 && !model.SupportsImageURLs() {
		return nil, &GenerationError{Reason: fmt.Sprintf("model %q does not accept source image URLs", model.Name)}
	}
	if model.ImageInput == imagegen.ImageInputSingle && len(input.ImageURLs) > 1 {
		return nil, &GenerationError{Reason: "this model only supports a single source image URL"}
	}

	params := imagegen.Params{
		Model:     model.Name,
		Endpoint:  model.Endpoint,
		Prompt:    input.Prompt,
		Seed:      input.Seed,
		ImageURLs: input.ImageURLs,
	}
	if input.ImageSize != "" {
		size := input.ImageSize
		params.ImageSize = &size
	}

	startedAt := s.Now().Unix()
	result, err := s.Provider.Generate(ctx, params)
	if err != nil {
		return nil, &GenerationError{Reason: "generation failed", Err: err}
	}
	completedAt := s.Now().Unix()

	uploadIDs, err := s.Uploads.ResolveURLs(input.ImageURLs)
	if err != nil {
		return nil, err
	}
	uploadIDsJSON, err := json.Marshal(uploadIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode upload ids: %w", err)
	}

	seed := params.Seed
	if result.Seed != nil {
		seed = result.Seed
	}
	promptJSON := buildPromptJSON(params, seed)

	request := &models.GenerationRequest{
		Prompt:                input.Prompt,
		Endpoint:              model.Endpoint,
		Model:                 model.Name,
		Seed:                  seed,
		ImageSize:             params.ImageSize,
		PromptJSON:            &promptJSON,
		UploadIDsJSON:         string(uploadIDsJSON),
		GenerationStartedAt:   startedAt,
		GenerationCompletedAt: completedAt,
	}

	images := make([]models.GeneratedImage, 0, len(result.Images))
	for _, img := range result.Images {
		images = append(images, models.GeneratedImage{
			ImageFilename:    img.Filename,
			ImageDownloadURL: img.DownloadURL,
		})
	}

	requestID, err := s.Generations.CreateWithImages(request, images)
	if err != nil {
		return nil, err
	}

	if s.Archiver != nil {
		for _, img := range result.Images {
			if _, err := s.Archiver.SaveFromURL(img.DownloadURL, img.Filename); err != nil {
				// the history row is already durable, archiving is best effort
				log.Printf("failed to archive generated image %s: %v", img.Filename, err)
			}
		}
	}

	return &GenerateOutput{
		RequestID: requestID,
		Images:    images,
		Message:   fmt.Sprintf("Generated %d image(s) with '%s'.", len(images), model.Name),
	}, nil
}

// buildPromptJSON serializes the full parameter set for audit and
// reproducibility, mirroring what gets stamped into image metadata.
func buildPromptJSON(params imagegen.Params, seed *int64) string {
	record := params
	record.Seed = seed
	encoded, err := json.Marshal(record)
	if err != nil {
		return ""
	}
	return string(encoded)
}
