// Package history archives simulation snapshots to Postgres for long-term
// inspection, complementing the short-lived Redis history.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lumora-studio/envsim/internal/snapshot"
	"github.com/lumora-studio/envsim/pkg/postgres"
)

// Archive writes snapshots into the env_snapshots table
type Archive struct {
	pg     postgres.Client
	logger *slog.Logger
}

// NewArchive creates an archive on top of an existing Postgres client
func NewArchive(pg postgres.Client, logger *slog.Logger) *Archive {
	if logger == nil {
		logger = slog.Default()
	}
	return &Archive{pg: pg, logger: logger}
}

// EnsureSchema creates the snapshot table if it does not exist yet
func (a *Archive) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS env_snapshots (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			saved_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			days_passed INTEGER NOT NULL,
			time_of_day DOUBLE PRECISION NOT NULL,
			season TEXT NOT NULL,
			weather TEXT NOT NULL,
			temperature DOUBLE PRECISION NOT NULL,
			state JSONB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_env_snapshots_session
			ON env_snapshots (session_id, saved_at DESC);
	`

	if _, err := a.pg.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create snapshot schema: %w", err)
	}
	return nil
}

// Insert archives one snapshot
func (a *Archive) Insert(ctx context.Context, snap snapshot.Snapshot) error {
	stateJSON, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO env_snapshots (
			session_id, days_passed, time_of_day, season, weather,
			temperature, state
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = a.pg.Exec(ctx, query,
		snap.SessionID,
		snap.DaysPassed,
		snap.TimeOfDay,
		snap.Season.String(),
		snap.CurrentWeather.String(),
		snap.Temperature,
		stateJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	a.logger.Debug("Archived snapshot",
		"session_id", snap.SessionID,
		"day", snap.DaysPassed,
		"time_of_day", snap.TimeOfDay)
	return nil
}

// Recent returns the newest archived snapshots for a session
func (a *Archive) Recent(ctx context.Context, sessionID string, limit int) ([]snapshot.Snapshot, error) {
	query := `
		SELECT state FROM env_snapshots
		WHERE session_id = $1
		ORDER BY saved_at DESC
		LIMIT $2
	`

	rows, err := a.pg.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot history: %w", err)
	}
	defer rows.Close()

	var snaps []snapshot.Snapshot
	for rows.Next() {
		var stateJSON []byte
		if err := rows.Scan(&stateJSON); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		var snap snapshot.Snapshot
		if err := json.Unmarshal(stateJSON, &snap); err != nil {
			a.logger.Warn("Skipping malformed archived snapshot", "session_id", sessionID, "error", err)
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
