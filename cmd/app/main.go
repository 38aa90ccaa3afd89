package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"academy/internal/api/v1/router"
	"academy/internal/config"
	"academy/internal/logger"
	"academy/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	log := logger.New()

	// 1. Load configuration
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msgf("Error loading config: %v", err)
	}

	// 2. Resolve the JWT secret from Secret Manager when configured
	if cfg.JWTSecretName != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		secrets, err := service.NewSecretService(ctx, cfg)
		if err != nil {
			cancel()
			log.Fatal().Msgf("Failed to create secret service: %v", err)
		}
		secret, err := secrets.GetSecret(ctx, cfg.JWTSecretName)
		cancel()
		secrets.Close()
		if err != nil {
			log.Fatal().Msgf("Failed to resolve JWT secret: %v", err)
		}
		cfg.JWTSecret = secret
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("No JWT secret configured")
	}

	// 3. Build router (and get DB connection)
	r, db, err := router.New(cfg, log)
	if err != nil {
		log.Fatal().Msgf("Failed to build router: %v", err)
	}
	defer db.Close()

	// 4. Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Start server in a goroutine
	go func() {
		log.Info().Msgf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Msgf("Listen: %s\n", err)
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutdown signal received, exiting...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Msgf("Server forced to shutdown: %v", err)
	}
	log.Info().Msg("Server shut down gracefully")
}
