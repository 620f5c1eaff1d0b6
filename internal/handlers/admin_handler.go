package handlers

import (
	"net/http"
	"strconv"

	"devhub/internal/api"
	"devhub/internal/models"

	"github.com/rs/zerolog"
)

// AdminHandler proxies the admin panel. The role gate in front of it only
// spares non-admins a round trip; the backend decides.
type AdminHandler struct {
	base
}

func NewAdminHandler(client *api.Client, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{base: base{client: client, logger: logger}}
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.backend(r).Admin.Users(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.fail(w, err)
		return
	}
	if users == nil {
		users = []models.AdminUser{}
	}
	h.respondWithJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.backend(r).Admin.DeleteUser(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	h.logger.Info().Int64("user_id", id).Msg("User deleted by admin")
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (h *AdminHandler) SuspendUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Suspended bool `json:"suspended"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.backend(r).Admin.SetUserSuspended(r.Context(), id, req.Suspended); err != nil {
		h.fail(w, err)
		return
	}
	action := "activated"
	if req.Suspended {
		action = "suspended"
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "User " + action + " successfully"})
}

func (h *AdminHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.backend(r).Admin.Projects(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.fail(w, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	h.respondWithJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (h *AdminHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.backend(r).Admin.DeleteProject(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

func (h *AdminHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.backend(r).Admin.Reviews(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	h.respondWithJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (h *AdminHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.backend(r).Admin.DeleteReview(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}

func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	period, _ := strconv.Atoi(r.URL.Query().Get("period"))
	analytics, err := h.backend(r).Admin.Analytics(r.Context(), period)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, analytics)
}

func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.backend(r).Admin.Settings(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, settings)
}

func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.PlatformSettingsUpdate
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.backend(r).Admin.UpdateSettings(r.Context(), req); err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Settings saved successfully"})
}
