package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/techbay/auth-backend/internal/api"
	"github.com/techbay/auth-backend/internal/auth"
	"github.com/techbay/auth-backend/internal/config"
	"github.com/techbay/auth-backend/internal/database"
	"github.com/techbay/auth-backend/internal/logger"
	"github.com/techbay/auth-backend/internal/passport"
	"github.com/techbay/auth-backend/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// The signing secret is read once here and injected; nothing re-reads it.
	tokens, err := auth.New(config.LoadSigningSecret(cfg.SecretKeyFile))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token codec")
	}

	// Set up the passport blob store
	store, err := passport.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize passport store")
	}

	// Set up database
	db, err := database.New(cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	profileService := services.NewProfileService(db)

	// Set up router
	router := api.NewRouter(tokens, profileService, store)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Starting authentication service")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
