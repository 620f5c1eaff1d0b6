package backendfake

import (
	"net/http"

	"devhub/internal/models"
)

func (s *Server) clientStats(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var stats models.ClientStats
	hired := map[int64]struct{}{}
	for _, p := range s.store.projects {
		if p.ClientID != clientID {
			continue
		}
		if p.Status != models.ProjectStatusCompleted {
			stats.ActiveProjects++
		}
		stats.TotalSpent += p.Budget
		if p.DeveloperID != 0 {
			hired[p.DeveloperID] = struct{}{}
		}
	}
	stats.DevelopersHired = len(hired)

	var sum, n int
	for _, rv := range s.store.reviews {
		if rv.ClientID == clientID {
			sum += rv.Rating
			n++
		}
	}
	if n > 0 {
		stats.AvgRating = models.Number(float64(sum) / float64(n))
	}
	respondWithJSON(w, http.StatusOK, stats)
}

func (s *Server) developerStats(w http.ResponseWriter, r *http.Request) {
	developerID, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid developer ID")
		return
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	dev, ok := s.store.developers[developerID]
	if !ok {
		respondWithError(w, http.StatusNotFound, "Developer not found")
		return
	}
	stats := models.DeveloperStats{Rating: dev.Rating}
	clients := map[int64]struct{}{}
	for _, p := range s.store.projects {
		if p.DeveloperID != developerID {
			continue
		}
		switch p.Status {
		case models.ProjectStatusCompleted:
			stats.TotalEarnings += p.Budget
		default:
			stats.ActiveProjects++
		}
		clients[p.ClientID] = struct{}{}
	}
	stats.TotalClients = len(clients)
	respondWithJSON(w, http.StatusOK, stats)
}

func (s *Server) platformStats(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var stats models.PlatformStats
	for _, a := range s.store.accounts {
		switch a.user.UserType {
		case models.UserTypeDeveloper:
			stats.TotalDevelopers++
		case models.UserTypeClient:
			stats.TotalClients++
		}
	}
	for _, p := range s.store.projects {
		stats.TotalProjects++
		if p.Status == models.ProjectStatusCompleted {
			stats.CompletedJobs++
		}
	}
	respondWithJSON(w, http.StatusOK, stats)
}
