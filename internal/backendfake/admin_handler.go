package backendfake

import (
	"net/http"
	"sort"
	"time"

	"devhub/internal/models"
)

func (s *Server) adminDashboard(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	d := models.AdminDashboard{
		TotalUsers:    len(s.store.accounts),
		TotalProjects: len(s.store.projects),
		TotalReviews:  len(s.store.reviews),
	}
	for _, a := range s.store.accounts {
		switch a.user.UserType {
		case models.UserTypeDeveloper:
			d.TotalDevelopers++
		case models.UserTypeClient:
			d.TotalClients++
		}
	}
	for _, p := range s.store.projects {
		d.TotalRevenue += p.Budget
		if p.Status == models.ProjectStatusInProgress {
			d.ActiveProjects++
		}
	}
	var sum int
	for _, rv := range s.store.reviews {
		sum += rv.Rating
	}
	if len(s.store.reviews) > 0 {
		d.AvgRating = models.Number(float64(sum) / float64(len(s.store.reviews)))
	}
	respondWithJSON(w, http.StatusOK, d)
}

func (s *Server) adminUsers(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []models.AdminUser{}
	for _, id := range sortedIDs(s.store.accounts) {
		a := s.store.accounts[id]
		if search != "" && !containsFold(a.user.FullName+" "+a.user.Email+" "+a.user.Username, search) {
			continue
		}
		out = append(out, models.AdminUser{
			ID:        a.user.ID,
			Username:  a.user.Username,
			FullName:  a.user.FullName,
			Email:     a.user.Email,
			UserType:  a.user.UserType,
			Suspended: a.suspended,
			CreatedAt: a.createdAt.UTC().Format(time.RFC3339),
		})
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"users": out})
}

func (s *Server) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.accounts[id]; !ok {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	delete(s.store.accounts, id)
	if dev := s.store.developerByUser(id); dev != nil {
		delete(s.store.developers, dev.ID)
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func (s *Server) adminSuspendUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	var req struct {
		Suspended bool `json:"suspended"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	a, ok := s.store.accounts[id]
	if !ok {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	a.suspended = req.Suspended
	respondWithJSON(w, http.StatusOK, map[string]any{"message": "User updated", "suspended": a.suspended})
}

func (s *Server) adminReviews(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []models.Review{}
	for _, id := range sortedIDs(s.store.reviews) {
		out = append(out, *s.store.reviews[id])
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"reviews": out})
}

func (s *Server) adminAnalytics(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	analytics := models.AdminAnalytics{TopDevelopers: []models.TopDeveloper{}, TopClients: []models.TopClient{}}
	for _, d := range s.store.developers {
		top := models.TopDeveloper{Username: d.Username, FullName: d.FullName, Rating: d.Rating, TotalReviews: d.TotalReviews}
		for _, p := range s.store.projects {
			if p.DeveloperID == d.ID {
				top.TotalProjects++
			}
		}
		analytics.TopDevelopers = append(analytics.TopDevelopers, top)
	}
	for _, a := range s.store.accounts {
		if a.user.UserType != models.UserTypeClient || a.user.IsAdmin() {
			continue
		}
		top := models.TopClient{FullName: a.user.FullName, Email: a.user.Email}
		for _, p := range s.store.projects {
			if p.ClientID == a.user.ID {
				top.TotalProjects++
				top.TotalSpent += p.Budget
			}
		}
		analytics.TopClients = append(analytics.TopClients, top)
	}
	sort.Slice(analytics.TopDevelopers, func(i, j int) bool {
		return analytics.TopDevelopers[i].Rating > analytics.TopDevelopers[j].Rating
	})
	sort.Slice(analytics.TopClients, func(i, j int) bool {
		return analytics.TopClients[i].TotalSpent > analytics.TopClients[j].TotalSpent
	})
	analytics.TopDevelopers = analytics.TopDevelopers[:min(len(analytics.TopDevelopers), 10)]
	analytics.TopClients = analytics.TopClients[:min(len(analytics.TopClients), 10)]
	respondWithJSON(w, http.StatusOK, analytics)
}

func (s *Server) adminSettings(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	respondWithJSON(w, http.StatusOK, s.store.settings)
}

func (s *Server) adminUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.PlatformSettingsUpdate
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if req.PlatformFee != "" {
		s.store.settings.PlatformFee = parseNumber(req.PlatformFee)
	}
	if req.MinProjectBudget != "" {
		s.store.settings.MinProjectBudget = parseNumber(req.MinProjectBudget)
	}
	if req.MaxProjectBudget != "" {
		s.store.settings.MaxProjectBudget = parseNumber(req.MaxProjectBudget)
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"message": "Settings updated", "settings": s.store.settings})
}
