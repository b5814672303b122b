package imagegen

import "context"

// Params is the full parameter set submitted to the generation provider
// for one request.
type Params struct {
	Model     string   `json:"model"`
	Endpoint  string   `json:"endpoint"`
	Prompt    string   `json:"prompt"`
	Seed      *int64   `json:"seed,omitempty"`
	ImageSize *string  `json:"image_size,omitempty"`
	ImageURLs []string `json:"image_urls,omitempty"`
}

// OutputImage is one image produced by the provider.
type OutputImage struct {
	Filename    string
	DownloadURL string
}

// Result is what a successful provider call yields.
type Result struct {
	Images []OutputImage
	Seed   *int64 // seed actually used, when the provider reports one
}

// Provider is the external image-generation collaborator. It is opaque
// beyond this request/response shape; a failed call surfaces as an error
// and leaves no trace anywhere else.
type Provider interface {
	Generate(ctx context.Context, params Params) (*Result, error)
}
