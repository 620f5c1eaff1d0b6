package handlers

import (
	"net/http"
	"strings"

	"devhub/internal/api"
	"devhub/internal/middleware"
	"devhub/internal/models"

	"github.com/rs/zerolog"
)

type JobHandler struct {
	base
}

func NewJobHandler(client *api.Client, logger zerolog.Logger) *JobHandler {
	return &JobHandler{base: base{client: client, logger: logger}}
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.backend(r).Jobs.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	h.respondWithJSON(w, http.StatusOK, jobs)
}

// Post publishes a job owned by the signed in client.
func (h *JobHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req models.JobRequest
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || strings.TrimSpace(req.Budget) == "" {
		h.respondWithError(w, http.StatusBadRequest, "validation_failed", "Title, description and budget are required")
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	req.ClientID = user.ID

	if err := h.backend(r).Jobs.Post(r.Context(), req); err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, map[string]string{"message": "Job posted successfully!"})
}

// Apply signs the current developer up for a job.
func (h *JobHandler) Apply(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.backend(r).Jobs.Apply(r.Context(), jobID, user.ID); err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Applied successfully!"})
}

func (h *JobHandler) Assign(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		DeveloperID int64 `json:"developer_id"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.DeveloperID == 0 {
		h.respondWithError(w, http.StatusBadRequest, "validation_failed", "developer_id is required")
		return
	}

	if err := h.backend(r).Jobs.Assign(r.Context(), jobID, req.DeveloperID); err != nil {
		h.fail(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Developer assigned successfully!"})
}

func (b *base) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, err := middleware.SessionFrom(r).CurrentUser(r.Context())
	if err != nil {
		b.fail(w, err)
		return nil, false
	}
	if user == nil {
		b.respondWithError(w, http.StatusUnauthorized, "unauthorized", "Please log in first")
		return nil, false
	}
	return user, true
}
