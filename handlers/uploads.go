package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/zoec98/imageedit/models"
	"github.com/zoec98/imageedit/repository"
)

// UploadHandler exposes the upload history surface.
type UploadHandler struct {
	Uploads repository.UploadRepositoryInterface
}

// RecordUpload appends one upload entry. The actual file transfer happens
// elsewhere; this only records the externally reachable URL it produced.
func (uh *UploadHandler) RecordUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	if req.URL == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_url", "url is required")
		return
	}
	if req.Filename == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_filename", "filename is required")
		return
	}

	upload := models.UploadedImage{
		URL:        req.URL,
		Filename:   req.Filename,
		UploadedAt: time.Now().Unix(),
	}
	if err := uh.Uploads.Create(&upload); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, upload)
}

// ListUploads returns the upload history, newest first.
func (uh *UploadHandler) ListUploads(w http.ResponseWriter, r *http.Request) {
	uploads, err := uh.Uploads.ListAll()
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, uploads)
}

// ResolveUploads maps a list of upload URLs back to ids, preserving order
// and skipping URLs with no matching upload.
func (uh *UploadHandler) ResolveUploads(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URLs []string `json:"urls"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	ids, err := uh.Uploads.ResolveURLs(req.URLs)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string][]uint{"upload_ids": ids})
}
