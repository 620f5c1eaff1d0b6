package handlers

import (
	"net/http"

	"devhub/internal/api"
	"devhub/internal/models"

	"github.com/rs/zerolog"
)

type ProfileHandler struct {
	base
}

func NewProfileHandler(client *api.Client, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{base: base{client: client, logger: logger}}
}

type profileResponse struct {
	*models.Profile
	DisplayName string `json:"displayName"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.backend(r).Profile.Get(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	if profile == nil {
		profile = &models.Profile{}
	}
	h.respondWithJSON(w, http.StatusOK, profileResponse{Profile: profile, DisplayName: profile.DisplayName()})
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdate
	if !h.decode(w, r, &req) {
		return
	}
	if req.NewPassword != "" && len(req.NewPassword) < 6 {
		h.respondWithError(w, http.StatusBadRequest, "validation_failed", "Password must be at least 6 characters")
		return
	}

	if err := h.backend(r).Profile.Update(r.Context(), req); err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Profile updated successfully!"})
}
