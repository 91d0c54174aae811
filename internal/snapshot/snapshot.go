// Package snapshot persists and restores the full simulation state so a
// session can resume exactly where it stopped.
package snapshot

import (
	"log/slog"
	"time"

	"github.com/lumora-studio/envsim/internal/environment"
	"github.com/lumora-studio/envsim/internal/weather"
)

// Snapshot is a flat record of the environment state plus the clock and
// weather-machine context needed to resume at the next tick. The blend
// source and target intensity let an interrupted transition finish at the
// values it was commanded with, not at the mid-blend ones.
type Snapshot struct {
	SessionID    string  `json:"session_id"`
	TableVersion string  `json:"table_version"`
	SavedAt      int64   `json:"saved_at"`
	TimeScale    float64 `json:"time_scale"`
	Paused       bool    `json:"paused"`

	WeatherBlendFrom       weather.Modifiers `json:"weather_blend_from"`
	WeatherFromIntensity   float64           `json:"weather_from_intensity"`
	WeatherTargetIntensity float64           `json:"weather_target_intensity"`

	environment.State
}

// Capture builds a snapshot of the coordinator's current state
func Capture(c *environment.Coordinator, sessionID string) Snapshot {
	from, fromIntensity := c.Weather().BlendFrom()
	return Snapshot{
		SessionID:              sessionID,
		TableVersion:           c.Weather().Table().Version,
		SavedAt:                time.Now().UnixMilli(),
		TimeScale:              c.Clock().Scale(),
		Paused:                 c.Clock().IsPaused(),
		WeatherBlendFrom:       from,
		WeatherFromIntensity:   fromIntensity,
		WeatherTargetIntensity: c.Weather().TargetIntensity(),
		State:                  c.CurrentState(),
	}
}

// Restore pushes a snapshot back into the coordinator's subsystems and
// forces a recompute. A modifier-table version mismatch is logged but not
// fatal: the snapshot's positional state is still valid, only the blended
// modifier values will differ.
func Restore(c *environment.Coordinator, snap Snapshot, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	if v := c.Weather().Table().Version; snap.TableVersion != "" && snap.TableVersion != v {
		logger.Warn("Snapshot was taken with a different modifier table",
			"snapshot_version", snap.TableVersion,
			"active_version", v)
	}

	c.Clock().Restore(snap.TimeOfDay, snap.DaysPassed)
	if snap.TimeScale > 0 {
		c.Clock().SetScale(snap.TimeScale)
	}
	if snap.Paused {
		c.Clock().Pause()
	}

	c.Seasons().Restore(snap.Season, snap.SeasonProgress)
	c.Weather().Restore(weather.Resume{
		Current:         snap.CurrentWeather,
		Target:          snap.TargetWeather,
		From:            snap.WeatherBlendFrom,
		FromIntensity:   snap.WeatherFromIntensity,
		TargetIntensity: snap.WeatherTargetIntensity,
		Progress:        snap.WeatherTransition,
	})

	c.UpdateEnvironment()

	logger.Info("Simulation state restored",
		"session_id", snap.SessionID,
		"day", snap.DaysPassed,
		"time_of_day", snap.TimeOfDay,
		"season", snap.Season.String(),
		"weather", snap.CurrentWeather.String())
}
