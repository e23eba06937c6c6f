package main

import (
	"os"

	"cp_stats/internal/api/mcptool"
	"cp_stats/internal/app/platforms"
	"cp_stats/internal/app/service"
	"cp_stats/internal/platform/config"
	"cp_stats/internal/platform/logger"

	"github.com/mark3labs/mcp-go/server"
)

const version = "0.1.0"

func main() {
	envErr := config.Load()
	cfg := config.AppConfig

	// stdout carries the protocol
	log := logger.NewWithOutput(cfg.LogLevel, os.Stderr)
	if envErr != nil {
		log.WithError(envErr).Debug("No .env file found, relying on environment variables")
	}

	registry := platforms.NewDefaultRegistry(cfg, log)
	statsService := service.NewStatsService(registry, log)

	log.Info("Serving MCP over stdio")
	if err := server.ServeStdio(mcptool.NewServer(statsService, version)); err != nil {
		log.WithError(err).Fatal("MCP server stopped")
	}
}
