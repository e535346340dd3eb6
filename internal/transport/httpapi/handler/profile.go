package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jkeats/budgetbuddy/internal/profile"
)

// ProfileHandler serves the profile fields and the debug panel flag
type ProfileHandler struct {
	profile *profile.Service
}

// NewProfileHandler creates a profile handler
func NewProfileHandler(svc *profile.Service) *ProfileHandler {
	return &ProfileHandler{profile: svc}
}

// ProfileResponse represents the stored profile
type ProfileResponse struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// UpdateProfileRequest represents the profile update request. Image accepts a
// data URI from the avatar upload; ResetImage restores the default.
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Image      *string `json:"image"`
	ResetImage bool    `json:"reset_image"`
}

// DebugSettingResponse represents the debug panel visibility flag
type DebugSettingResponse struct {
	Visible bool `json:"visible"`
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ProfileResponse{
		Name:  h.profile.DisplayName(r.Context()),
		Image: h.profile.Avatar(r.Context()),
	})
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	if req.Name != nil {
		h.profile.SetDisplayName(ctx, *req.Name)
	}
	switch {
	case req.ResetImage:
		h.profile.ResetAvatar(ctx)
	case req.Image != nil:
		h.profile.SetAvatar(ctx, *req.Image)
	}

	respondWithJSON(w, http.StatusOK, ProfileResponse{
		Name:  h.profile.DisplayName(ctx),
		Image: h.profile.Avatar(ctx),
	})
}

// GetDebugSetting handles GET /settings/debug
func (h *ProfileHandler) GetDebugSetting(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, DebugSettingResponse{
		Visible: h.profile.DebugVisible(r.Context()),
	})
}

// UpdateDebugSetting handles PUT /settings/debug
func (h *ProfileHandler) UpdateDebugSetting(w http.ResponseWriter, r *http.Request) {
	var req DebugSettingResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.profile.SetDebugVisible(r.Context(), req.Visible)
	respondWithJSON(w, http.StatusOK, DebugSettingResponse{Visible: req.Visible})
}
