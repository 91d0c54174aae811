package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumora-studio/envsim/internal/history"
	"github.com/lumora-studio/envsim/internal/simulator"
	"github.com/lumora-studio/envsim/pkg/config"
	"github.com/lumora-studio/envsim/pkg/health"
	"github.com/lumora-studio/envsim/pkg/mqtt"
	"github.com/lumora-studio/envsim/pkg/postgres"
	"github.com/lumora-studio/envsim/pkg/redis"
)

func main() {
	// Load configuration with hierarchy: defaults → env → flags
	cfg := config.NewConfig()
	cfg.ServiceName = "envsim-agent"
	cfg.LoadFromEnv()
	cfg.LoadFromFlags()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Set up structured logging
	logLevel := parseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting environment simulation agent",
		"service_name", cfg.ServiceName,
		"mqtt_broker", cfg.MQTTAddress(),
		"redis_host", cfg.RedisAddress(),
		"latitude", cfg.Latitude,
		"seconds_per_day", cfg.SecondsPerDay,
		"log_level", cfg.LogLevel)

	// Set up context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Initialize MQTT and Redis clients
	mqttClient := mqtt.NewClient(cfg, logger)
	redisClient := redis.NewClient(cfg, logger)

	// The Postgres archive is optional; the simulation runs without it
	var archive *history.Archive
	if cfg.HistoryEnabled {
		pgClient := postgres.NewClient(cfg, logger)
		if err := pgClient.Connect(ctx); err != nil {
			logger.Error("Failed to connect to Postgres, history disabled", "error", err)
		} else {
			archive = history.NewArchive(pgClient, logger)
			defer pgClient.Disconnect()
		}
	}

	// Create the simulation agent
	agent, err := simulator.NewAgent(mqttClient, redisClient, archive, cfg, logger)
	if err != nil {
		logger.Error("Failed to create agent", "error", err)
		os.Exit(1)
	}

	// Start health check server
	healthChecker := health.NewChecker(mqttClient, redisClient, logger)
	httpServer := startHealthServer(cfg.HealthPort, healthChecker, logger)

	// Start agent in a goroutine
	agentDone := make(chan error, 1)
	go func() {
		agentDone <- agent.Start(ctx)
	}()

	// Wait for shutdown signal or agent exit. On a signal the run loop is
	// cancelled and drained first, so the final snapshot is saved before
	// any connection is torn down.
	select {
	case <-sigChan:
		logger.Info("Shutdown signal received (SIGTERM/SIGINT)")
		cancel()
		if err := <-agentDone; err != nil {
			logger.Error("Agent error", "error", err)
		}
	case err := <-agentDone:
		if err != nil {
			logger.Error("Agent failed", "error", err)
		}
	}

	// Graceful shutdown
	logger.Info("Initiating graceful shutdown")

	if err := agent.Stop(); err != nil {
		logger.Error("Error stopping agent", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down health server", "error", err)
	}

	logger.Info("Simulation agent shutdown complete")
}

func startHealthServer(port int, checker *health.Checker, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", checker.HandlerFunc())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		logger.Info("Starting health check server", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Health server error", "error", err)
		}
	}()

	return server
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
