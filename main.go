package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devhub/internal/backendfake"
	"devhub/internal/config"
	"devhub/internal/logger"
	"devhub/internal/router"
	"devhub/internal/session"
	"devhub/internal/signup"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
)

const (
	appName         = "devhub"
	wizardMaxIdle   = 30 * time.Minute
	wizardPruneTick = 5 * time.Minute
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger(cfg.LogLevel)
	displayAppname(appName)
	log.Info().Str("api_base_url", cfg.APIBaseURL).Msg("Application starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := sessionStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Session storage unavailable")
	}
	defer closeStore()

	var servers []*http.Server

	if cfg.FakeBackend {
		fake := backendfake.NewServer(cfg.JWTSecret, log)
		if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
			if err := fake.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
				log.Fatal().Err(err).Msg("Admin seed failed")
			}
		}
		servers = append(servers, start(log, "fake backend", &http.Server{
			Addr:    ":" + cfg.FakeBackendPort,
			Handler: fake,
		}))
	}

	wizards := signup.NewRegistry()
	go pruneWizards(ctx, wizards, log)

	servers = append(servers, start(log, "gateway", &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.SetupRouter(cfg, store, wizards, log),
		ReadHeaderTimeout: 10 * time.Second,
	}))

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, server := range servers {
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Str("addr", server.Addr).Msg("Graceful shutdown failed")
		}
	}

	log.Info().Msg("Server stopped")
}

func start(log zerolog.Logger, name string, server *http.Server) *http.Server {
	go func() {
		log.Info().Msgf("%s listening on %s", name, server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Str("server", name).Msg("Server error")
		}
	}()
	return server
}

func sessionStorage(ctx context.Context, cfg config.Config) (session.Storage, func(), error) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		rdb, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStorage(rdb), func() { rdb.Close() }, nil
	case config.SessionStoreMemory:
		return session.NewMemoryStorage(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}
}

func pruneWizards(ctx context.Context, wizards *signup.Registry, log zerolog.Logger) {
	ticker := time.NewTicker(wizardPruneTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := wizards.Prune(wizardMaxIdle); n > 0 {
				log.Debug().Int("pruned", n).Int("active", wizards.Len()).Msg("Idle signup wizards dropped")
			}
		}
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
