package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cp_stats/internal/api"
	"cp_stats/internal/app/platforms"
	"cp_stats/internal/app/service"
	"cp_stats/internal/platform/config"
	"cp_stats/internal/platform/logger"
)

func main() {
	// 1. Load Configuration
	envErr := config.Load()
	cfg := config.AppConfig

	// 2. Logger
	log := logger.New(cfg.LogLevel)
	if envErr != nil {
		log.WithError(envErr).Info("No .env file found, relying on environment variables")
	}
	log.Info("Configuration loaded.")

	// 3. Platform registry & services
	registry := platforms.NewDefaultRegistry(cfg, log)
	statsService := service.NewStatsService(registry, log)

	// 4. Router & HTTP Server
	router := api.NewRouter(cfg, log, statsService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 5. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.WithField("port", cfg.APIPort).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatalf("Could not listen on %s", cfg.APIPort)
		}
	}()

	<-stop

	log.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("Server shutdown failed")
	}
	log.Info("Server stopped gracefully.")
}
