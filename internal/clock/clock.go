// Package clock advances the simulation's normalized time of day and day
// counter. Time only moves forward through Advance; command-style setters
// never trigger day-boundary logic.
package clock

import (
	"log/slog"
	"math"

	"github.com/lumora-studio/envsim/internal/curve"
)

// maxTimeOfDay keeps timeOfDay strictly below 1.0 after clamping
const maxTimeOfDay = 1.0 - 1e-9

// Options configures a Clock. Zero values fall back to defaults.
type Options struct {
	SecondsPerDay float64 // real seconds per simulated day at scale 1.0
	Scale         float64 // initial time scale
	MinScale      float64 // lower clamp for SetScale
	MaxScale      float64 // upper clamp for SetScale
	StartTime     float64 // initial time of day [0,1)
	StartDay      int     // initial day counter
}

// Result reports what a single Advance (or skip) call did. The caller turns
// it into events: one NewDay per entry in Days, at most one HourChanged,
// and one TimeChanged whenever Moved is true.
type Result struct {
	Time        float64
	Days        []int // day numbers reached, one per boundary crossed
	Hour        int
	HourChanged bool
	Moved       bool
}

// Clock tracks normalized time of day and the day counter
type Clock struct {
	timeOfDay     float64
	daysPassed    int
	secondsPerDay float64
	scale         float64
	minScale      float64
	maxScale      float64
	paused        bool
	logger        *slog.Logger
}

// New creates a Clock from the given options
func New(opts Options, logger *slog.Logger) *Clock {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SecondsPerDay <= 0 {
		opts.SecondsPerDay = 86400
	}
	if opts.MinScale <= 0 {
		opts.MinScale = 0.01
	}
	if opts.MaxScale < opts.MinScale {
		opts.MaxScale = 10000
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	return &Clock{
		timeOfDay:     curve.Clamp(opts.StartTime, 0, maxTimeOfDay),
		daysPassed:    max(opts.StartDay, 0),
		secondsPerDay: opts.SecondsPerDay,
		scale:         curve.Clamp(opts.Scale, opts.MinScale, opts.MaxScale),
		minScale:      opts.MinScale,
		maxScale:      opts.MaxScale,
		logger:        logger,
	}
}

// Advance moves time forward by deltaSeconds of real time, scaled. A single
// large delta may cross several day boundaries; each one is reported
// separately in the result.
func (c *Clock) Advance(deltaSeconds float64) Result {
	res := Result{Time: c.timeOfDay, Hour: c.Hour()}

	if c.paused {
		return res
	}
	if deltaSeconds < 0 {
		c.logger.Warn("Ignoring negative clock advance", "delta_seconds", deltaSeconds)
		return res
	}

	prevHour := c.Hour()
	prevDays := c.daysPassed

	c.timeOfDay += deltaSeconds * c.scale / c.secondsPerDay
	for c.timeOfDay >= 1 {
		c.timeOfDay -= 1
		c.daysPassed++
		res.Days = append(res.Days, c.daysPassed)
	}

	res.Time = c.timeOfDay
	res.Hour = c.Hour()
	res.HourChanged = res.Hour != prevHour || c.daysPassed != prevDays
	res.Moved = true
	return res
}

// SetTimeOfDay sets the time of day, clamped to [0,1). Day-boundary logic
// is not triggered.
func (c *Clock) SetTimeOfDay(t float64) Result {
	if t < 0 || t > 1 {
		c.logger.Warn("Clamping out-of-range time of day", "value", t)
	}
	c.timeOfDay = curve.Clamp(t, 0, maxTimeOfDay)
	return Result{Time: c.timeOfDay, Hour: c.Hour(), Moved: true}
}

// SetScale sets the time scale, clamped to the configured range
func (c *Clock) SetScale(s float64) {
	clamped := curve.Clamp(s, c.minScale, c.maxScale)
	if clamped != s {
		c.logger.Warn("Clamping time scale", "requested", s, "applied", clamped)
	}
	c.scale = clamped
}

// Pause stops the clock; Advance becomes a no-op
func (c *Clock) Pause() {
	c.paused = true
}

// Resume restarts the clock. Elapsed time is supplied per Advance call, so
// time paused is simply never replayed.
func (c *Clock) Resume() {
	c.paused = false
}

// SkipToTime jumps forward to the given clock time. If that time has
// already passed today, it lands on the next day and reports the boundary.
func (c *Clock) SkipToTime(hour, minute int) Result {
	target := normalizeClockTime(hour, minute)
	res := Result{Moved: true}

	if target <= c.timeOfDay {
		c.daysPassed++
		res.Days = append(res.Days, c.daysPassed)
	}
	c.timeOfDay = target

	res.Time = c.timeOfDay
	res.Hour = c.Hour()
	res.HourChanged = true
	return res
}

// SkipToNextDay jumps to the given clock time on the following day,
// crossing exactly one day boundary.
func (c *Clock) SkipToNextDay(hour, minute int) Result {
	c.daysPassed++
	c.timeOfDay = normalizeClockTime(hour, minute)

	return Result{
		Time:        c.timeOfDay,
		Days:        []int{c.daysPassed},
		Hour:        c.Hour(),
		HourChanged: true,
		Moved:       true,
	}
}

// TimeOfDay returns the normalized time of day [0,1)
func (c *Clock) TimeOfDay() float64 {
	return c.timeOfDay
}

// DaysPassed returns the day counter
func (c *Clock) DaysPassed() int {
	return c.daysPassed
}

// Hour returns the current hour [0,23]
func (c *Clock) Hour() int {
	return int(math.Floor(c.timeOfDay * 24))
}

// Scale returns the current time scale
func (c *Clock) Scale() float64 {
	return c.scale
}

// IsPaused returns whether the clock is paused
func (c *Clock) IsPaused() bool {
	return c.paused
}

// SecondsPerDay returns the configured day length in real seconds
func (c *Clock) SecondsPerDay() float64 {
	return c.secondsPerDay
}

// Restore overwrites the clock position, used when resuming from a snapshot
func (c *Clock) Restore(timeOfDay float64, daysPassed int) {
	c.timeOfDay = curve.Clamp(timeOfDay, 0, maxTimeOfDay)
	c.daysPassed = max(daysPassed, 0)
}

func normalizeClockTime(hour, minute int) float64 {
	h := curve.Clamp(float64(hour), 0, 23)
	m := curve.Clamp(float64(minute), 0, 59)
	return (h + m/60) / 24
}
