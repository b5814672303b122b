package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zoec98/imageedit/services"
)

// GenerationHandler exposes the generation surface.
type GenerationHandler struct {
	Service *services.GenerationService
}

// Generate runs one generation call and records it in history. Provider
// failures come back as a descriptive error with an empty result and no
// history side effects.
func (gh *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var input services.GenerateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	output, err := gh.Service.Generate(r.Context(), input)
	if err != nil {
		var genErr *services.GenerationError
		if errors.As(err, &genErr) {
			WriteAPIError(w, http.StatusBadGateway, "generation_failed", genErr.Error())
			return
		}
		WriteAPIError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, output)
}
