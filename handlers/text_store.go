package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zoec98/imageedit/services"
)

// TextStoreHandler exposes one name-keyed text file store (prompts or
// styles) as a small CRUD surface.
type TextStoreHandler struct {
	Store *services.TextStore
}

// List returns all entry names in natural order.
func (th *TextStoreHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := th.Store.List()
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"names": names})
}

// Get returns one entry's contents.
func (th *TextStoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	content, err := th.Store.Get(name)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "no such entry")
			return
		}
		WriteAPIError(w, http.StatusBadRequest, "invalid_name", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name, "content": content})
}

// Create saves a new entry; a name collision yields a copy name.
func (th *TextStoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	saved, err := th.Store.Save(req.Name, req.Content)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_name", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": saved})
}

// Update overwrites an existing entry.
func (th *TextStoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	if err := th.Store.Overwrite(name, req.Content); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "no such entry")
			return
		}
		WriteAPIError(w, http.StatusBadRequest, "invalid_name", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes an entry.
func (th *TextStoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := th.Store.Delete(name); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "no such entry")
			return
		}
		WriteAPIError(w, http.StatusBadRequest, "invalid_name", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
