package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

const DefaultFalBaseURL = "https://fal.run"

// FalClient calls a fal.ai-style synchronous inference endpoint.
type FalClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewFalClient builds a provider client for the given API key.
func NewFalClient(apiKey, baseURL string) *FalClient {
	if baseURL == "" {
		baseURL = DefaultFalBaseURL
	}
	return &FalClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

type falRequest struct {
	Prompt    string   `json:"prompt"`
	Seed      *int64   `json:"seed,omitempty"`
	ImageSize *string  `json:"image_size,omitempty"`
	ImageURLs []string `json:"image_urls,omitempty"`
	ImageURL  string   `json:"image_url,omitempty"`
}

type falResponse struct {
	Images []struct {
		URL      string `json:"url"`
		FileName string `json:"file_name"`
	} `json:"images"`
	Seed *int64 `json:"seed,omitempty"`
}

// Generate submits the request and blocks until the provider responds.
func (c *FalClient) Generate(ctx context.Context, params Params) (*Result, error) {
	body := falRequest{
		Prompt:    params.Prompt,
		Seed:      params.Seed,
		ImageSize: params.ImageSize,
	}
	// kontext-style endpoints take a single image_url, the rest a list
	if len(params.ImageURLs) == 1 {
		body.ImageURL = params.ImageURLs[0]
	} else if len(params.ImageURLs) > 1 {
		body.ImageURLs = params.ImageURLs
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation request: %w", err)
	}

	endpoint := c.BaseURL + "/" + params.Endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(snippet))
	}

	var decoded falResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	result := &Result{Seed: decoded.Seed}
	for _, img := range decoded.Images {
		filename := img.FileName
		if filename == "" {
			filename = filenameFromURL(img.URL)
		}
		result.Images = append(result.Images, OutputImage{
			Filename:    filename,
			DownloadURL: img.URL,
		})
	}
	return result, nil
}

func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Path == "" {
		return "image.png"
	}
	name := path.Base(parsed.Path)
	if name == "." || name == "/" {
		return "image.png"
	}
	return name
}
