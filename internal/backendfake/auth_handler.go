package backendfake

import (
	"errors"
	"net/http"

	"devhub/internal/models"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var payload map[string]string
	if err := decodeBody(r, &payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	a, err := s.users.Register(payload)
	if err != nil {
		s.logger.Error().Err(err).Msg("Registration failed")
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := s.auth.GenerateToken(a)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	user := a.user
	respondWithJSON(w, http.StatusCreated, models.AuthResponse{
		Message: "User registered successfully",
		User:    &user,
		Token:   token,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	a, err := s.users.Authenticate(&req)
	if errors.Is(err, errAccountSuspended) {
		respondWithError(w, http.StatusForbidden, err.Error())
		return
	}
	if err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Login failed")
		respondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	token, err := s.auth.GenerateToken(a)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	user := a.user
	respondWithJSON(w, http.StatusOK, models.AuthResponse{
		Message: "Login successful",
		User:    &user,
		Token:   token,
	})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetUserByID(claimsFrom(r).UserID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"user": user})
}
