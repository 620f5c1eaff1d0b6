// Package backendfake is an in-memory DevHub backend. It serves the same
// REST surface as the real one, closely enough for local development and
// tests of the gateway and CLI.
package backendfake

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"devhub/internal/models"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type contextKey string

const claimsKey contextKey = "claims"

type Server struct {
	store  *store
	users  *UserService
	auth   *AuthService
	logger zerolog.Logger
	router *mux.Router
}

func NewServer(jwtSecret string, logger zerolog.Logger) *Server {
	st := newStore()
	s := &Server{
		store:  st,
		users:  NewUserService(st, logger),
		auth:   NewAuthService(jwtSecret, logger),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) SeedAdmin(email, password string) error {
	return s.users.SeedAdmin(email, password)
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", s.register).Methods("POST")
	auth.HandleFunc("/login", s.login).Methods("POST")
	auth.Handle("/me", s.authenticated(s.me)).Methods("GET")

	api.HandleFunc("/developers", s.listDevelopers).Methods("GET")
	api.HandleFunc("/developers/{id}", s.getDeveloper).Methods("GET")
	api.Handle("/developers/{id}", s.authenticated(s.updateDeveloper)).Methods("PUT")
	api.Handle("/developers/{id}", s.authenticated(s.deleteDeveloper)).Methods("DELETE")

	api.Handle("/projects", s.authenticated(s.listProjects)).Methods("GET")
	api.Handle("/projects", s.authenticated(s.createProject)).Methods("POST")
	api.Handle("/projects/{id}", s.authenticated(s.getProject)).Methods("GET")
	api.Handle("/projects/{id}", s.authenticated(s.updateProject)).Methods("PUT")
	api.Handle("/projects/{id}", s.authenticated(s.deleteProject)).Methods("DELETE")

	api.HandleFunc("/reviews/developer/{id}", s.developerReviews).Methods("GET")
	api.Handle("/reviews", s.authenticated(s.addReview)).Methods("POST")
	api.Handle("/reviews/{id}", s.authenticated(s.updateReview)).Methods("PUT")
	api.Handle("/reviews/{id}", s.authenticated(s.deleteReview)).Methods("DELETE")

	messages := api.PathPrefix("/messages").Subrouter()
	messages.Use(s.authMiddleware)
	messages.HandleFunc("", s.listMessages).Methods("GET")
	messages.HandleFunc("", s.sendMessage).Methods("POST")
	messages.HandleFunc("/conversations", s.conversations).Methods("GET")
	messages.HandleFunc("/read-all/{id}", s.markAllRead).Methods("PATCH")
	messages.HandleFunc("/{id}/read", s.markRead).Methods("PATCH")
	messages.HandleFunc("/{id}", s.deleteMessage).Methods("DELETE")

	stats := api.PathPrefix("/stats").Subrouter()
	stats.HandleFunc("/client/{id}", s.clientStats).Methods("GET")
	stats.HandleFunc("/developer/{id}", s.developerStats).Methods("GET")
	stats.HandleFunc("/platform", s.platformStats).Methods("GET")

	api.HandleFunc("/jobs", s.listJobs).Methods("GET")
	api.Handle("/jobs", s.authenticated(s.postJob)).Methods("POST")
	api.Handle("/jobs/{id}/apply", s.authenticated(s.applyJob)).Methods("POST")
	api.Handle("/jobs/{id}/assign", s.authenticated(s.assignJob)).Methods("POST")

	api.Handle("/profile", s.authenticated(s.getProfile)).Methods("GET")
	api.Handle("/profile", s.authenticated(s.updateProfile)).Methods("PUT")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(s.authMiddleware, requireRole(string(models.RoleAdmin)))
	admin.HandleFunc("/dashboard", s.adminDashboard).Methods("GET")
	admin.HandleFunc("/users", s.adminUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", s.adminDeleteUser).Methods("DELETE")
	admin.HandleFunc("/users/{id}/suspend", s.adminSuspendUser).Methods("PATCH")
	admin.HandleFunc("/projects", s.adminProjects).Methods("GET")
	admin.HandleFunc("/projects/{id}", s.deleteProject).Methods("DELETE")
	admin.HandleFunc("/reviews", s.adminReviews).Methods("GET")
	admin.HandleFunc("/reviews/{id}", s.deleteReview).Methods("DELETE")
	admin.HandleFunc("/analytics", s.adminAnalytics).Methods("GET")
	admin.HandleFunc("/settings", s.adminSettings).Methods("GET")
	admin.HandleFunc("/settings", s.adminUpdateSettings).Methods("PUT")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	return r
}

func (s *Server) authenticated(h http.HandlerFunc) http.Handler {
	return s.authMiddleware(h)
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "No token provided")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondWithError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := s.auth.ValidateToken(parts[1])
		if err != nil {
			s.logger.Warn().Err(err).Msg("Invalid token")
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

func requireRole(allowedRoles ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFrom(r)
			for _, role := range allowedRoles {
				if claims != nil && claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondWithError(w, http.StatusForbidden, "Admin access required")
		})
	}
}

func claimsFrom(r *http.Request) *Claims {
	claims, _ := r.Context().Value(claimsKey).(*Claims)
	return claims
}

func pathID(r *http.Request) (int64, bool) {
	return parseID(mux.Vars(r)["id"])
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// The real backend answers errors with {"error": "<message>"}.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
