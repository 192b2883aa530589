package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloudToolkit/internal/auth"
	"cloudToolkit/internal/config"
	"cloudToolkit/internal/handlers"
	"cloudToolkit/internal/logging"
	"cloudToolkit/internal/probe"
	"cloudToolkit/internal/secrets"
	"cloudToolkit/internal/server"
	"cloudToolkit/internal/storage"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init("toolkit-api", cfg.LogLevel)

	if err := cfg.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("invalid server configuration")
	}

	fetcher, closeFetcher, err := secrets.NewFetcher(ctx, cfg.SecretBackend, cfg.GCPProject, cfg.SecretNamespace)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.SecretBackend).Msg("failed to initialize secret backend")
	}
	defer closeFetcher()

	objects, err := storage.NewGCS(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage client")
	}
	defer objects.Close()

	prober := &probe.Prober{
		Host:    cfg.ProbeHost,
		Port:    cfg.ProbePort,
		Timeout: cfg.ProbeTimeout,
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	router := server.NewRouter(jwtManager, server.Handlers{
		Auth:      handlers.NewAuthHandler(jwtManager, cfg.OperatorUsername, cfg.OperatorPasswordHash, cfg.TokenTTL),
		Probe:     handlers.NewProbeHandler(prober),
		Secrets:   handlers.NewSecretsHandler(fetcher, cfg.SecretBackend),
		Bootstrap: handlers.NewBootstrapHandler(objects, cfg.UnrarGCSPath, ""),
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // unrar downloads run inside the request
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().
		Str("addr", cfg.ListenAddr).
		Str("backend", cfg.SecretBackend).
		Str("probe_target", prober.Address()).
		Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
}
