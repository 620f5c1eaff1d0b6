package backendfake

import (
	"net/http"
	"slices"
	"strings"

	"devhub/internal/models"
)

// Jobs come back as a bare array, unlike the other list endpoints.
func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []models.Job{}
	for _, id := range sortedIDs(s.store.jobs) {
		out = append(out, *s.store.jobs[id])
	}
	respondWithJSON(w, http.StatusOK, out)
}

func (s *Server) postJob(w http.ResponseWriter, r *http.Request) {
	var req models.JobRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		respondWithError(w, http.StatusBadRequest, "Title and description are required")
		return
	}
	claims := claimsFrom(r)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	job := &models.Job{
		ID:          s.store.id(),
		Title:       req.Title,
		Description: req.Description,
		Budget:      parseNumber(req.Budget),
		Deadline:    req.Deadline,
		ClientID:    claims.UserID,
		CreatedAt:   nowString(),
	}
	s.store.jobs[job.ID] = job
	respondWithJSON(w, http.StatusCreated, map[string]any{"message": "Job posted", "job": *job})
}

type developerIDRequest struct {
	DeveloperID int64 `json:"developer_id"`
}

func (s *Server) applyJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}
	var req developerIDRequest
	if err := decodeBody(r, &req); err != nil || req.DeveloperID == 0 {
		respondWithError(w, http.StatusBadRequest, "developer_id is required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.jobs[jobID]; !ok {
		respondWithJSON(w, http.StatusNotFound, map[string]string{"message": "Job not found"})
		return
	}
	if slices.Contains(s.store.applicants[jobID], req.DeveloperID) {
		respondWithJSON(w, http.StatusConflict, map[string]string{"message": "Already applied"})
		return
	}
	s.store.applicants[jobID] = append(s.store.applicants[jobID], req.DeveloperID)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Applied successfully"})
}

func (s *Server) assignJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}
	var req developerIDRequest
	if err := decodeBody(r, &req); err != nil || req.DeveloperID == 0 {
		respondWithError(w, http.StatusBadRequest, "developer_id is required")
		return
	}
	claims := claimsFrom(r)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	job, ok := s.store.jobs[jobID]
	if !ok {
		respondWithJSON(w, http.StatusNotFound, map[string]string{"message": "Job not found"})
		return
	}
	if job.ClientID != claims.UserID {
		respondWithJSON(w, http.StatusForbidden, map[string]string{"message": "Only the job owner can assign it"})
		return
	}
	job.DeveloperID = req.DeveloperID
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Developer assigned"})
}
