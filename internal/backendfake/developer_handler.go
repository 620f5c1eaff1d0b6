package backendfake

import (
	"net/http"
	"strconv"
	"strings"

	"devhub/internal/models"
)

func (s *Server) listDevelopers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search, skill, location := q.Get("search"), q.Get("skill"), q.Get("location")
	minRating, _ := strconv.ParseFloat(q.Get("rating"), 64)
	limit, _ := strconv.Atoi(q.Get("limit"))

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []models.Developer{}
	for _, id := range sortedIDs(s.store.developers) {
		d := s.store.developers[id]
		switch {
		case search != "" && !containsFold(d.FullName+" "+d.Username+" "+d.Skills+" "+d.Bio, search):
			continue
		case skill != "" && !containsFold(d.Skills, skill):
			continue
		case location != "" && !containsFold(d.Location, location):
			continue
		case d.Rating.Float64() < minRating:
			continue
		}
		dev := *d
		dev.Reviews = nil
		out = append(out, dev)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"developers": out})
}

func (s *Server) getDeveloper(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid developer ID")
		return
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	d, ok := s.store.developers[id]
	if !ok {
		respondWithError(w, http.StatusNotFound, "Developer not found")
		return
	}
	dev := *d
	dev.Reviews = s.reviewsFor(id)
	respondWithJSON(w, http.StatusOK, map[string]any{"developer": dev})
}

func (s *Server) updateDeveloper(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid developer ID")
		return
	}
	var fields map[string]string
	if err := decodeBody(r, &fields); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	d, ok := s.store.developers[id]
	if !ok {
		respondWithError(w, http.StatusNotFound, "Developer not found")
		return
	}
	if d.UserID != claimsFrom(r).UserID {
		respondWithError(w, http.StatusForbidden, "Not your profile")
		return
	}
	for k, v := range fields {
		switch k {
		case "bio":
			d.Bio = v
		case "skills":
			d.Skills = v
		case "location":
			d.Location = v
		case "hourlyRate", "hourly_rate":
			d.HourlyRate = parseNumber(v)
		case "portfolioUrl", "portfolio_url":
			d.PortfolioURL = v
		case "experienceLevel", "experience_level":
			d.ExperienceLevel = v
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"developer": *d})
}

func (s *Server) deleteDeveloper(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid developer ID")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	d, ok := s.store.developers[id]
	if !ok {
		respondWithError(w, http.StatusNotFound, "Developer not found")
		return
	}
	claims := claimsFrom(r)
	if d.UserID != claims.UserID && claims.Role != string(models.RoleAdmin) {
		respondWithError(w, http.StatusForbidden, "Not your profile")
		return
	}
	delete(s.store.developers, id)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Developer deleted"})
}

// reviewsFor expects the store lock to be held.
func (s *Server) reviewsFor(developerID int64) []models.Review {
	out := []models.Review{}
	for _, id := range sortedIDs(s.store.reviews) {
		if rv := s.store.reviews[id]; rv.DeveloperID == developerID {
			out = append(out, *rv)
		}
	}
	return out
}

func (s *Server) developerReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid developer ID")
		return
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	respondWithJSON(w, http.StatusOK, map[string]any{"reviews": s.reviewsFor(id)})
}

func (s *Server) addReview(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	claims := claimsFrom(r)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.developers[req.DeveloperID]; !ok {
		respondWithError(w, http.StatusNotFound, "Developer not found")
		return
	}
	rv := &models.Review{
		ID:           s.store.id(),
		DeveloperID:  req.DeveloperID,
		ClientID:     claims.UserID,
		ReviewerName: s.store.userName(claims.UserID),
		Rating:       req.Rating,
		Message:      req.Message,
		Comment:      req.Message,
		CreatedAt:    nowString(),
	}
	s.store.reviews[rv.ID] = rv
	s.store.refreshRating(req.DeveloperID)
	respondWithJSON(w, http.StatusCreated, map[string]any{"message": "Review added", "review": *rv})
}

func (s *Server) updateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid review ID")
		return
	}
	var req struct {
		Rating  int    `json:"rating"`
		Message string `json:"message"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	rv, ok := s.store.reviews[id]
	if !ok {
		respondWithError(w, http.StatusNotFound, "Review not found")
		return
	}
	if rv.ClientID != claimsFrom(r).UserID {
		respondWithError(w, http.StatusForbidden, "Not your review")
		return
	}
	if req.Rating >= 1 && req.Rating <= 5 {
		rv.Rating = req.Rating
	}
	if strings.TrimSpace(req.Message) != "" {
		rv.Message, rv.Comment = req.Message, req.Message
	}
	s.store.refreshRating(rv.DeveloperID)
	respondWithJSON(w, http.StatusOK, map[string]any{"review": *rv})
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid review ID")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	rv, ok := s.store.reviews[id]
	if !ok {
		respondWithError(w, http.StatusNotFound, "Review not found")
		return
	}
	claims := claimsFrom(r)
	if rv.ClientID != claims.UserID && claims.Role != string(models.RoleAdmin) {
		respondWithError(w, http.StatusForbidden, "Not your review")
		return
	}
	delete(s.store.reviews, id)
	s.store.refreshRating(rv.DeveloperID)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Review deleted"})
}
