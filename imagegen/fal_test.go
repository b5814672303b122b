package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFalClient_Generate(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"images": [
				{"url": "https://cdn/out.png", "file_name": "out.png"},
				{"url": "https://cdn/other/final.jpg"}
			],
			"seed": 42
		}`))
	}))
	defer server.Close()

	client := NewFalClient("test-key", server.URL)
	size := "landscape_4_3"
	result, err := client.Generate(context.Background(), Params{
		Endpoint:  "fal-ai/flux/dev",
		Prompt:    "cat",
		ImageSize: &size,
	})
	require.NoError(t, err)

	assert.Equal(t, "/fal-ai/flux/dev", gotPath)
	assert.Equal(t, "Key test-key", gotAuth)
	assert.Equal(t, "cat", gotBody["prompt"])
	assert.Equal(t, "landscape_4_3", gotBody["image_size"])

	require.Len(t, result.Images, 2)
	assert.Equal(t, "out.png", result.Images[0].Filename)
	// filename falls back to the URL path when the provider omits it
	assert.Equal(t, "final.jpg", result.Images[1].Filename)
	require.NotNil(t, result.Seed)
	assert.Equal(t, int64(42), *result.Seed)
}

func TestFalClient_Generate_SingleSourceImage(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"images": []}`))
	}))
	defer server.Close()

	client := NewFalClient("k", server.URL)
	_, err := client.Generate(context.Background(), Params{
		Endpoint:  "fal-ai/flux-pro/kontext",
		Prompt:    "cat",
		ImageURLs: []string{"https://x/src.png"},
	})
	require.NoError(t, err)

	// one source image goes out as image_url, not image_urls
	assert.Equal(t, "https://x/src.png", gotBody["image_url"])
	_, hasList := gotBody["image_urls"]
	assert.False(t, hasList)
}

func TestFalClient_Generate_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewFalClient("k", server.URL)
	_, err := client.Generate(context.Background(), Params{Endpoint: "fal-ai/flux/dev", Prompt: "cat"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestLookupModel(t *testing.T) {
	model, err := LookupModel("flux-kontext")
	require.NoError(t, err)
	assert.Equal(t, ImageInputSingle, model.ImageInput)
	assert.True(t, model.SupportsImageURLs())

	_, err = LookupModel("bogus")
	assert.Error(t, err)
}
