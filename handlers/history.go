package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/zoec98/imageedit/repository"
)

// HistoryHandler exposes the generation request history.
type HistoryHandler struct {
	Generations repository.GenerationRepositoryInterface
}

func requestIDParam(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "request_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// ListRequests returns all recorded generation requests, newest first.
func (hh *HistoryHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := hh.Generations.ListAll()
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// GetRequest returns one request with its images.
func (hh *HistoryHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := requestIDParam(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "request_id must be a positive integer")
		return
	}

	request, err := hh.Generations.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "no such generation request")
			return
		}
		WriteAPIError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// ListRequestImages returns the output images of one request.
func (hh *HistoryHandler) ListRequestImages(w http.ResponseWriter, r *http.Request) {
	id, err := requestIDParam(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "request_id must be a positive integer")
		return
	}

	images, err := hh.Generations.ListImagesByRequestID(id)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, images)
}

// DeleteRequest removes one request and, via cascade, its images.
func (hh *HistoryHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := requestIDParam(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "request_id must be a positive integer")
		return
	}

	if err := hh.Generations.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "no such generation request")
			return
		}
		WriteAPIError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
