package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jkeats/budgetbuddy/internal/settings"
)

// SettingsHandler serves the category and account list management
type SettingsHandler struct {
	settings *settings.Service
}

// NewSettingsHandler creates a settings handler
func NewSettingsHandler(svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{settings: svc}
}

// AddEntryRequest represents a list append request
type AddEntryRequest struct {
	Name string `json:"name"`
}

// ListResponse represents a managed name list
type ListResponse struct {
	Entries []string `json:"entries"`
}

// GetCategories handles GET /categories
func (h *SettingsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ListResponse{Entries: h.settings.Categories(r.Context())})
}

// AddCategory handles POST /categories
func (h *SettingsHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, h.settings.AddCategory)
}

// DeleteCategory handles DELETE /categories/{name}
func (h *SettingsHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.settings.RemoveCategory)
}

// GetAccounts handles GET /accounts
func (h *SettingsHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ListResponse{Entries: h.settings.Accounts(r.Context())})
}

// AddAccount handles POST /accounts
func (h *SettingsHandler) AddAccount(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, h.settings.AddAccount)
}

// DeleteAccount handles DELETE /accounts/{name}
func (h *SettingsHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.settings.RemoveAccount)
}

func (h *SettingsHandler) add(w http.ResponseWriter, r *http.Request, op func(context.Context, string) ([]string, error)) {
	var req AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entries, err := op(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, settings.ErrEmptyName) {
			respondWithError(w, http.StatusBadRequest, "name is required")
			return
		}
		if errors.Is(err, settings.ErrDuplicateEntry) {
			respondWithError(w, http.StatusConflict, "name already exists")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to add entry")
		return
	}

	respondWithJSON(w, http.StatusCreated, ListResponse{Entries: entries})
}

// remove maps the deletion guards: a name in active use is a conflict, while
// dropping the last entry is silently refused with the unchanged list.
func (h *SettingsHandler) remove(w http.ResponseWriter, r *http.Request, op func(context.Context, string) ([]string, error)) {
	entries, err := op(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrEntryNotFound):
			respondWithError(w, http.StatusNotFound, "entry not found")
			return
		case errors.Is(err, settings.ErrEntryInUse):
			respondWithErrorCode(w, http.StatusConflict, "ENTRY_IN_USE", "entry is referenced by existing rows")
			return
		case errors.Is(err, settings.ErrMinimumEntries):
			// fall through to the 200 below with the unchanged list
		default:
			respondWithError(w, http.StatusInternalServerError, "failed to delete entry")
			return
		}
	}

	respondWithJSON(w, http.StatusOK, ListResponse{Entries: entries})
}
