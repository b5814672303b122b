package imagegen

import (
	"fmt"
	"sort"
	"strings"
)

// ImageInputMode describes how many source image URLs a model accepts.
type ImageInputMode string

const (
	ImageInputNone   ImageInputMode = "none"
	ImageInputSingle ImageInputMode = "single"
	ImageInputMulti  ImageInputMode = "multi"
)

// Model describes one selectable model and the provider capability it
// maps onto.
type Model struct {
	Name         string
	Endpoint     string
	ImageInput   ImageInputMode
	AllowedSizes []string
}

// SupportsImageURLs reports whether the model accepts source images at all.
func (m Model) SupportsImageURLs() bool {
	return m.ImageInput != ImageInputNone
}

var defaultSizes = []string{
	"square_hd",
	"square",
	"portrait_4_3",
	"portrait_16_9",
	"landscape_4_3",
	"landscape_16_9",
}

var aspectRatios = []string{"1:1", "3:4", "4:3", "9:16", "16:9", "21:9"}

// ModelRegistry maps model names to their provider endpoints and
// capabilities. Keys are what callers and STARTUP_MODEL refer to.
var ModelRegistry = map[string]Model{
	"flux-dev": {
		Name:         "flux-dev",
		Endpoint:     "fal-ai/flux/dev",
		ImageInput:   ImageInputNone,
		AllowedSizes: defaultSizes,
	},
	"flux-pro": {
		Name:         "flux-pro",
		Endpoint:     "fal-ai/flux-pro/v1.1",
		ImageInput:   ImageInputNone,
		AllowedSizes: defaultSizes,
	},
	"flux-kontext": {
		Name:         "flux-kontext",
		Endpoint:     "fal-ai/flux-pro/kontext",
		ImageInput:   ImageInputSingle,
		AllowedSizes: aspectRatios,
	},
	"nano-banana-edit": {
		Name:         "nano-banana-edit",
		Endpoint:     "fal-ai/nano-banana/edit",
		ImageInput:   ImageInputMulti,
		AllowedSizes: aspectRatios,
	},
}

// LookupModel resolves a model name against the registry.
func LookupModel(name string) (Model, error) {
	model, ok := ModelRegistry[name]
	if !ok {
		return Model{}, fmt.Errorf("unknown model %q, must be one of: %s", name, strings.Join(ModelNames(), ", "))
	}
	return model, nil
}

// ModelNames returns the registered model names in sorted order.
func ModelNames() []string {
	names := make([]string, 0, len(ModelRegistry))
	for name := range ModelRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
