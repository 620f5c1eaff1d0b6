package backendfake

import (
	"net/http"
	"strings"

	"devhub/internal/models"
)

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	userID := claimsFrom(r).UserID

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	a, ok := s.store.accounts[userID]
	if !ok {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	p := models.Profile{
		FullName: a.user.FullName,
		Email:    a.user.Email,
		Phone:    a.extra["phone"],
		Location: a.extra["location"],
		Role:     strings.ToLower(a.user.UserType),
		Company:  a.extra["companyName"],
		Budget:   parseNumber(a.extra["budget"]),
	}
	if dev := s.store.developerByUser(userID); dev != nil {
		p.Skills = dev.SkillList(0)
		p.HourlyRate = dev.HourlyRate
		p.Location = dev.Location
	}
	respondWithJSON(w, http.StatusOK, p)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdate
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	userID := claimsFrom(r).UserID

	if req.NewPassword != "" {
		if len(req.NewPassword) < 6 {
			respondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
			return
		}
		if err := s.users.ChangePassword(userID, req.NewPassword); err != nil {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	a, ok := s.store.accounts[userID]
	if !ok {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if req.FullName != "" {
		a.user.FullName = req.FullName
	}
	set := func(key, value string) {
		if value != "" {
			a.extra[key] = value
		}
	}
	set("phone", req.Phone)
	set("location", req.Location)
	set("companyName", req.Company)
	set("budget", req.Budget)

	if dev := s.store.developerByUser(userID); dev != nil {
		if req.FullName != "" {
			dev.FullName = req.FullName
		}
		if req.Skills != "" {
			dev.Skills = req.Skills
		}
		if req.HourlyRate != "" {
			dev.HourlyRate = parseNumber(req.HourlyRate)
		}
		if req.Location != "" {
			dev.Location = req.Location
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Profile updated"})
}
