package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zoec98/imageedit/database"
	"github.com/zoec98/imageedit/imagegen"
	"github.com/zoec98/imageedit/models"
	"github.com/zoec98/imageedit/repository"
)

type fakeProvider struct {
	result     *imagegen.Result
	err        error
	calls      int
	lastParams imagegen.Params
}

func (f *fakeProvider) Generate(ctx context.Context, params imagegen.Params) (*imagegen.Result, error) {
	f.calls++
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func setupService(t *testing.T, provider imagegen.Provider) (*GenerationService, *gorm.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.sqlite3")
	db, err := database.InitGormDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))

	uploads := repository.NewUploadRepository(db)
	generations := repository.NewGenerationRepository(db)
	return NewGenerationService(uploads, generations, provider, nil), db
}

func TestGenerationService_Generate_RecordsHistory(t *testing.T) {
	provider := &fakeProvider{result: &imagegen.Result{
		Images: []imagegen.OutputImage{
			{Filename: "out1.png", DownloadURL: "https://cdn/out1.png"},
			{Filename: "out2.png", DownloadURL: "https://cdn/out2.png"},
		},
	}}
	svc, db := setupService(t, provider)

	require.NoError(t, db.Create(&models.UploadedImage{
		URL: "https://x/src.png", Filename: "src.png", UploadedAt: 1700000000,
	}).Error)

	output, err := svc.Generate(context.Background(), GenerateInput{
		Model:     "nano-banana-edit",
		Prompt:    "cat",
		ImageSize: "4:3",
		ImageURLs: []string{"https://x/src.png", "https://elsewhere/other.png"},
	})
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.NotZero(t, output.RequestID)
	assert.Len(t, output.Images, 2)

	var request models.GenerationRequest
	require.NoError(t, db.Preload("Images").First(&request, "request_id = ?", output.RequestID).Error)
	assert.Equal(t, "cat", request.Prompt)
	assert.Equal(t, "nano-banana-edit", request.Model)
	assert.Equal(t, "fal-ai/nano-banana/edit", request.Endpoint)
	// only the known URL resolves; the foreign one is skipped
	assert.Equal(t, "[1]", request.UploadIDsJSON)
	assert.GreaterOrEqual(t, request.GenerationCompletedAt, request.GenerationStartedAt)
	require.NotNil(t, request.PromptJSON)
	assert.Contains(t, *request.PromptJSON, "fal-ai/nano-banana/edit")
	assert.Len(t, request.Images, 2)

	require.NotNil(t, provider.lastParams.ImageSize)
	assert.Equal(t, "4:3", *provider.lastParams.ImageSize)
}

func TestGenerationService_Generate_ProviderFailureLeavesNoTrace(t *testing.T) {
	provider := &fakeProvider{err: errors.New("provider unavailable")}
	svc, db := setupService(t, provider)

	_, err := svc.Generate(context.Background(), GenerateInput{
		Model:  "flux-dev",
		Prompt: "cat",
	})
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))

	var count int64
	require.NoError(t, db.Model(&models.GenerationRequest{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGenerationService_Generate_InputValidation(t *testing.T) {
	tests := []struct {
		name  string
		input GenerateInput
	}{
		{
			name:  "unknown model",
			input: GenerateInput{Model: "no-such-model", Prompt: "cat"},
		},
		{
			name: "single-image model with two source URLs",
			input: GenerateInput{
				Model:     "flux-kontext",
				Prompt:    "cat",
				ImageURLs: []string{"https://x/1.png", "https://x/2.png"},
			},
		},
		{
			name: "text-only model with source URLs",
			input: GenerateInput{
				Model:     "flux-dev",
				Prompt:    "cat",
				ImageURLs: []string{"https://x/1.png"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{result: &imagegen.Result{}}
			svc, _ := setupService(t, provider)

			_, err := svc.Generate(context.Background(), tt.input)
			var genErr *GenerationError
			require.True(t, errors.As(err, &genErr))
			assert.Zero(t, provider.calls, "provider must not be called on invalid input")
		})
	}
}

func TestGenerationService_Generate_EmptyResultIsRecorded(t *testing.T) {
	provider := &fakeProvider{result: &imagegen.Result{}}
	svc, db := setupService(t, provider)

	output, err := svc.Generate(context.Background(), GenerateInput{Model: "flux-dev", Prompt: "cat"})
	require.NoError(t, err)
	assert.Empty(t, output.Images)

	var count int64
	require.NoError(t, db.Model(&models.GenerationRequest{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
