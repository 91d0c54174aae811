// Package season tracks the cyclic four-season calendar with a normalized
// progress fraction, advanced by day boundaries or explicit commands.
package season

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/lumora-studio/envsim/internal/curve"
)

// Season is one of the four calendar seasons
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

var seasonNames = [...]string{"spring", "summer", "autumn", "winter"}

func (s Season) String() string {
	if s < Spring || s > Winter {
		return fmt.Sprintf("season(%d)", int(s))
	}
	return seasonNames[s]
}

// Next returns the season following s in the cycle
func (s Season) Next() Season {
	return (s + 1) % 4
}

// Parse converts a season name to a Season
func Parse(name string) (Season, error) {
	for i, n := range seasonNames {
		if n == name {
			return Season(i), nil
		}
	}
	return Spring, fmt.Errorf("unknown season %q", name)
}

// maxProgress keeps progress strictly below 1.0 after clamping
const maxProgress = 1.0 - 1e-9

// Change reports a season transition. Changed is false for redundant sets
// and ordinary day increments that stay within the season.
type Change struct {
	Changed  bool
	New      Season
	Old      Season
	Progress float64
}

// Tracker holds the current season and its progress. A non-positive length
// disables day-driven auto-progression.
type Tracker struct {
	season     Season
	progress   float64
	daysSince  int
	lengthDays int
	logger     *slog.Logger
}

// New creates a Tracker starting in spring
func New(lengthDays int, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	if lengthDays <= 0 {
		logger.Warn("Season auto-progression disabled", "season_length_days", lengthDays)
	}
	return &Tracker{
		season:     Spring,
		lengthDays: lengthDays,
		logger:     logger,
	}
}

// Set switches to the given season and resets progress. Setting the season
// that is already current is a logged no-op.
func (t *Tracker) Set(s Season) Change {
	if s < Spring || s > Winter {
		t.logger.Warn("Ignoring out-of-range season", "season", int(s))
		return Change{New: t.season, Old: t.season, Progress: t.progress}
	}
	if s == t.season {
		t.logger.Warn("Season already current", "season", s.String())
		return Change{New: s, Old: s, Progress: t.progress}
	}

	old := t.season
	t.season = s
	t.progress = 0
	t.daysSince = 0
	return Change{Changed: true, New: s, Old: old, Progress: 0}
}

// SetProgress sets the progress fraction, clamped to [0,1), and recomputes
// the day counter from it
func (t *Tracker) SetProgress(p float64) {
	if p < 0 || p > 1 {
		t.logger.Warn("Clamping out-of-range season progress", "value", p)
	}
	t.progress = curve.Clamp(p, 0, maxProgress)
	if t.lengthDays > 0 {
		t.daysSince = int(math.Floor(t.progress * float64(t.lengthDays)))
	}
}

// AdvanceToNext moves to the next season in the cycle
func (t *Tracker) AdvanceToNext() Change {
	old := t.season
	t.season = t.season.Next()
	t.progress = 0
	t.daysSince = 0
	return Change{Changed: true, New: t.season, Old: old, Progress: 0}
}

// OnNewDay advances the day counter by one. When the counter reaches the
// season length the tracker rolls over to the next season. Disabled when
// the length is non-positive.
func (t *Tracker) OnNewDay() Change {
	if t.lengthDays <= 0 {
		return Change{New: t.season, Old: t.season, Progress: t.progress}
	}

	t.daysSince++
	if t.daysSince >= t.lengthDays {
		return t.AdvanceToNext()
	}

	t.progress = float64(t.daysSince) / float64(t.lengthDays)
	return Change{New: t.season, Old: t.season, Progress: t.progress}
}

// Season returns the current season
func (t *Tracker) Season() Season {
	return t.season
}

// Progress returns the progress fraction [0,1)
func (t *Tracker) Progress() float64 {
	return t.progress
}

// DaysSinceStart returns full days elapsed in the current season
func (t *Tracker) DaysSinceStart() int {
	return t.daysSince
}

// Length returns the configured season length in days
func (t *Tracker) Length() int {
	return t.lengthDays
}

// Restore overwrites the tracker state, used when resuming from a snapshot
func (t *Tracker) Restore(s Season, progress float64) {
	if s >= Spring && s <= Winter {
		t.season = s
	}
	t.SetProgress(progress)
}
