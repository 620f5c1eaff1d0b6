package backendfake

import (
	"net/http"
	"strconv"
	"time"

	"devhub/internal/models"
)

func nowString() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")
	clientID, _ := strconv.ParseInt(q.Get("clientId"), 10, 64)
	developerID, _ := strconv.ParseInt(q.Get("developerId"), 10, 64)

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []models.Project{}
	for _, id := range sortedIDs(s.store.projects) {
		p := s.store.projects[id]
		switch {
		case status != "" && string(p.Status) != status:
			continue
		case clientID != 0 && p.ClientID != clientID:
			continue
		case developerID != 0 && p.DeveloperID != developerID:
			continue
		}
		out = append(out, *p)
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"projects": out})
}

func (s *Server) adminProjects(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []models.Project{}
	for _, id := range sortedIDs(s.store.projects) {
		p := s.store.projects[id]
		if search != "" && !containsFold(p.Title+" "+p.Description, search) {
			continue
		}
		out = append(out, *p)
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"projects": out})
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req models.ProjectRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Budget <= 0 {
		respondWithError(w, http.StatusBadRequest, "Title and budget are required")
		return
	}
	claims := claimsFrom(r)
	if claims.UserType != models.UserTypeClient {
		respondWithError(w, http.StatusForbidden, "Only clients can create projects")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if req.DeveloperID != 0 {
		if _, ok := s.store.developers[req.DeveloperID]; !ok {
			respondWithError(w, http.StatusNotFound, "Developer not found")
			return
		}
	}
	p := &models.Project{
		ID:          s.store.id(),
		Title:       req.Title,
		Description: req.Description,
		Budget:      models.Number(req.Budget),
		Deadline:    req.Deadline,
		Status:      models.ProjectStatusPending,
		ClientID:    claims.UserID,
		DeveloperID: req.DeveloperID,
		CreatedAt:   nowString(),
	}
	s.store.projects[p.ID] = p
	respondWithJSON(w, http.StatusCreated, map[string]any{"message": "Project created", "project": *p})
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	p, ok := s.store.projects[id]
	if !ok {
		respondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"project": *p})
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}
	var req struct {
		Title       string               `json:"title"`
		Description string               `json:"description"`
		Status      models.ProjectStatus `json:"status"`
		Deadline    string               `json:"deadline"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	switch req.Status {
	case "", models.ProjectStatusPending, models.ProjectStatusInProgress, models.ProjectStatusCompleted:
	default:
		respondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, ok := s.store.projects[id]
	if !ok {
		respondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Deadline != "" {
		p.Deadline = req.Deadline
	}
	if req.Status != "" {
		p.Status = req.Status
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"project": *p})
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, ok := s.store.projects[id]
	if !ok {
		respondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	claims := claimsFrom(r)
	if p.ClientID != claims.UserID && claims.Role != string(models.RoleAdmin) {
		respondWithError(w, http.StatusForbidden, "Not your project")
		return
	}
	delete(s.store.projects, id)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Project deleted"})
}
