package router

import (
	"net/http"

	"devhub/internal/api"
	"devhub/internal/config"
	"devhub/internal/handlers"
	"devhub/internal/middleware"
	"devhub/internal/models"
	"devhub/internal/session"
	"devhub/internal/signup"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const apiContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"

// SetupRouter wires the gateway: browser sessions, the JSON API under /api
// and the static pages.
func SetupRouter(cfg config.Config, store session.Storage, wizards *signup.Registry, logger zerolog.Logger) *mux.Router {
	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, nil, logger)

	authHandler := handlers.NewAuthHandler(client, logger)
	signupHandler := handlers.NewSignupHandler(client, wizards, logger)
	dashboardHandler := handlers.NewDashboardHandler(client, logger)
	marketHandler := handlers.NewMarketHandler(client, logger)
	jobHandler := handlers.NewJobHandler(client, logger)
	profileHandler := handlers.NewProfileHandler(client, logger)
	adminHandler := handlers.NewAdminHandler(client, logger)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.PerformanceMonitoring(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.BrowserSession(store, cfg.SecureCookie, logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(rateLimiter.Middleware())
	apiRouter.Use(middleware.ContentSecurityPolicy(apiContentSecurityPolicy))
	apiRouter.Use(middleware.RequestValidation())

	apiRouter.HandleFunc("/session", authHandler.Session).Methods("GET")

	auth := apiRouter.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	protectedAuth := auth.PathPrefix("").Subrouter()
	protectedAuth.Use(middleware.RequireAuth())
	protectedAuth.HandleFunc("/me", authHandler.Me).Methods("GET")

	signupRouter := apiRouter.PathPrefix("/signup").Subrouter()
	signupRouter.HandleFunc("", signupHandler.State).Methods("GET")
	signupRouter.HandleFunc("/next", signupHandler.Next).Methods("POST")
	signupRouter.HandleFunc("/back/{step:[0-9]+}", signupHandler.Back).Methods("POST")
	signupRouter.HandleFunc("/close", signupHandler.Close).Methods("POST")
	signupRouter.HandleFunc("/submit", signupHandler.Submit).Methods("POST")
	signupRouter.HandleFunc("/demo", signupHandler.Demo).Methods("GET")

	dashboards := apiRouter.PathPrefix("/dashboard").Subrouter()
	dashboards.Use(middleware.RequireAuth())
	dashboards.HandleFunc("/client", dashboardHandler.Client).Methods("GET")
	dashboards.HandleFunc("/developer", dashboardHandler.Developer).Methods("GET")
	dashboards.HandleFunc("/admin", dashboardHandler.Admin).Methods("GET")

	market := apiRouter.PathPrefix("").Subrouter()
	market.Use(middleware.RequireAuth())
	market.HandleFunc("/developers", marketHandler.ListDevelopers).Methods("GET")
	market.HandleFunc("/developers/{id:[0-9]+}", marketHandler.GetDeveloper).Methods("GET")
	market.HandleFunc("/developers/{id:[0-9]+}/reviews", marketHandler.DeveloperReviews).Methods("GET")
	market.HandleFunc("/reviews", marketHandler.AddReview).Methods("POST")
	market.HandleFunc("/projects", marketHandler.Hire).Methods("POST")
	market.HandleFunc("/messages", marketHandler.SendMessage).Methods("POST")

	clientOnly := middleware.RequireRole(models.UserTypeClient)
	market.HandleFunc("/jobs", jobHandler.List).Methods("GET")
	market.Handle("/jobs", clientOnly(http.HandlerFunc(jobHandler.Post))).Methods("POST")
	market.HandleFunc("/jobs/{id:[0-9]+}/apply", jobHandler.Apply).Methods("POST")
	market.Handle("/jobs/{id:[0-9]+}/assign", clientOnly(http.HandlerFunc(jobHandler.Assign))).Methods("POST")

	market.HandleFunc("/profile", profileHandler.Get).Methods("GET")
	market.HandleFunc("/profile", profileHandler.Update).Methods("PUT")

	admin := apiRouter.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(string(models.RoleAdmin)))
	admin.HandleFunc("/users", adminHandler.Users).Methods("GET")
	admin.HandleFunc("/users/{id:[0-9]+}", adminHandler.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/users/{id:[0-9]+}/suspend", adminHandler.SuspendUser).Methods("PATCH")
	admin.HandleFunc("/projects", adminHandler.Projects).Methods("GET")
	admin.HandleFunc("/projects/{id:[0-9]+}", adminHandler.DeleteProject).Methods("DELETE")
	admin.HandleFunc("/reviews", adminHandler.Reviews).Methods("GET")
	admin.HandleFunc("/reviews/{id:[0-9]+}", adminHandler.DeleteReview).Methods("DELETE")
	admin.HandleFunc("/analytics", adminHandler.Analytics).Methods("GET")
	admin.HandleFunc("/settings", adminHandler.Settings).Methods("GET")
	admin.HandleFunc("/settings", adminHandler.UpdateSettings).Methods("PUT")

	pages := r.PathPrefix("/").Subrouter()
	pages.Use(middleware.CheckAuth())
	pages.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))

	return r
}
