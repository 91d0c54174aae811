// Package simulator hosts the environment simulation as a long-running
// agent: it drives the coordinator tick loop, bridges its events onto MQTT,
// accepts commands, and persists snapshots for resume.
package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lumora-studio/envsim/internal/celestial"
	"github.com/lumora-studio/envsim/internal/environment"
	"github.com/lumora-studio/envsim/internal/history"
	"github.com/lumora-studio/envsim/internal/season"
	"github.com/lumora-studio/envsim/internal/snapshot"
	"github.com/lumora-studio/envsim/internal/weather"
	"github.com/lumora-studio/envsim/pkg/config"
	"github.com/lumora-studio/envsim/pkg/mqtt"
	"github.com/lumora-studio/envsim/pkg/redis"
)

// Agent runs the simulation loop and connects it to the outside world
type Agent struct {
	mqtt        mqtt.Client
	redis       redis.Client
	coordinator *environment.Coordinator
	storage     *snapshot.Storage
	archive     *history.Archive
	cfg         *config.Config
	sessionID   string
	done        chan struct{} // closed when Start returns
	logger      *slog.Logger
}

// NewAgent assembles the simulation agent. The archive may be nil when the
// Postgres history is disabled.
func NewAgent(mqttClient mqtt.Client, redisClient redis.Client, archive *history.Archive, cfg *config.Config, logger *slog.Logger) (*Agent, error) {
	if logger == nil {
		logger = slog.Default()
	}

	table, err := loadTable(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := environment.Options{
		Latitude:         cfg.Latitude,
		SecondsPerDay:    cfg.SecondsPerDay,
		TimeScale:        cfg.TimeScale,
		MinTimeScale:     cfg.MinTimeScale,
		MaxTimeScale:     cfg.MaxTimeScale,
		StartTimeOfDay:   cfg.StartTimeOfDay,
		SeasonLengthDays: cfg.SeasonLengthDays,
		TransitionSec:    cfg.WeatherTransitionSec,
		Table:            table,
		Auto: weather.AutoChange{
			Enabled:      cfg.AutoWeatherEnabled,
			Interval:     cfg.AutoWeatherIntervalSec,
			MinIntensity: cfg.AutoWeatherMinIntensity,
			MaxIntensity: cfg.AutoWeatherMaxIntensity,
			Seed:         cfg.RandomSeed,
		},
	}

	if cfg.WallClockSync {
		timeOfDay, dayOfYear := celestial.WallClock(time.Now())
		opts.StartTimeOfDay = timeOfDay
		logger.Info("Syncing simulation to host clock",
			"time_of_day", timeOfDay, "day_of_year", dayOfYear)
	}

	coordinator, err := environment.New(opts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build coordinator: %w", err)
	}

	if cfg.WallClockSync {
		_, dayOfYear := celestial.WallClock(time.Now())
		idx, progress := celestial.SeasonAt(dayOfYear)
		coordinator.Seasons().Restore(season.Season(idx), progress)
	}

	return &Agent{
		mqtt:        mqttClient,
		redis:       redisClient,
		coordinator: coordinator,
		storage:     snapshot.NewStorage(redisClient, logger),
		archive:     archive,
		cfg:         cfg,
		sessionID:   uuid.New().String(),
		done:        make(chan struct{}),
		logger:      logger,
	}, nil
}

// loadTable resolves the weather modifier table from the configured file or
// the built-in defaults
func loadTable(cfg *config.Config, logger *slog.Logger) (*weather.Table, error) {
	if cfg.WeatherTableFile == "" {
		return weather.DefaultTable(), nil
	}

	table, err := weather.LoadTable(cfg.WeatherTableFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load weather table: %w", err)
	}
	logger.Info("Loaded weather modifier table",
		"file", cfg.WeatherTableFile, "version", table.Version)
	return table, nil
}

// Coordinator exposes the simulation coordinator, mainly for tests
func (a *Agent) Coordinator() *environment.Coordinator {
	return a.coordinator
}

// SessionID returns the identifier under which snapshots are stored
func (a *Agent) SessionID() string {
	return a.sessionID
}

// Start runs the agent until the context is cancelled
func (a *Agent) Start(ctx context.Context) error {
	defer close(a.done)

	a.logger.Info("Starting simulation agent",
		"service_name", a.cfg.ServiceName,
		"mqtt_broker", a.cfg.MQTTAddress(),
		"session_id", a.sessionID,
		"tick_interval_ms", a.cfg.TickIntervalMs)

	if err := a.mqtt.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to MQTT: %w", err)
	}
	if err := a.redis.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}

	if a.archive != nil {
		if err := a.archive.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare history archive: %w", err)
		}
	}

	a.resume(ctx)
	a.bridgeEvents()

	if err := a.mqtt.Subscribe(mqtt.TopicCommandAll, 0, a.handleCommand); err != nil {
		return fmt.Errorf("failed to subscribe to command topics: %w", err)
	}

	a.coordinator.Initialize()
	a.run(ctx)

	// Persist a final snapshot so the next start resumes seamlessly
	if err := a.storage.Save(context.Background(), snapshot.Capture(a.coordinator, a.sessionID)); err != nil {
		a.logger.Error("Failed to save final snapshot", "error", err)
	}

	a.logger.Info("Simulation agent stopping")
	return nil
}

// resume restores the most recent snapshot if one exists. Wall-clock sync
// takes precedence: the host clock, not the stored position, decides where
// the simulation starts.
func (a *Agent) resume(ctx context.Context) {
	if a.cfg.WallClockSync {
		return
	}

	snap, err := a.storage.LoadLatest(ctx)
	if err != nil {
		a.logger.Info("No previous snapshot, starting fresh", "reason", err)
		return
	}

	snapshot.Restore(a.coordinator, *snap, a.logger)
	a.sessionID = snap.SessionID
}

// run is the tick loop. Each tick feeds the real elapsed time into the
// coordinator; snapshots are saved on their own slower cadence.
func (a *Agent) run(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(a.cfg.TickIntervalMs) * time.Millisecond)
	defer ticker.Stop()

	snapshotEvery := time.Duration(a.cfg.SnapshotIntervalSec) * time.Second
	lastTick := time.Now()
	lastSnapshot := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			a.coordinator.Tick(now.Sub(lastTick).Seconds())
			lastTick = now

			if snapshotEvery > 0 && now.Sub(lastSnapshot) >= snapshotEvery {
				lastSnapshot = now
				a.persist(ctx)
			}
		}
	}
}

// persist saves the current state to Redis and, when enabled, Postgres
func (a *Agent) persist(ctx context.Context) {
	snap := snapshot.Capture(a.coordinator, a.sessionID)

	if err := a.storage.Save(ctx, snap); err != nil {
		a.logger.Error("Failed to save snapshot", "error", err)
	}
	if a.archive != nil {
		if err := a.archive.Insert(ctx, snap); err != nil {
			a.logger.Error("Failed to archive snapshot", "error", err)
		}
	}
}

// Stop gracefully stops the agent. It waits for Start to return before
// closing the connections, so the final shutdown snapshot is never lost to a
// save racing the teardown.
func (a *Agent) Stop() error {
	a.logger.Info("Stopping simulation agent")

	select {
	case <-a.done:
	case <-time.After(10 * time.Second):
		a.logger.Warn("Timed out waiting for the run loop to stop")
	}

	a.mqtt.Disconnect()
	if err := a.redis.Close(); err != nil {
		a.logger.Error("Error closing Redis connection", "error", err)
		return err
	}

	a.logger.Info("Simulation agent stopped")
	return nil
}
