// Package environment holds the coordinator that owns the shared state
// record and runs the per-tick pipeline: clock, season, weather, celestial
// positions, lighting, then modifier merge and publish.
package environment

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/lumora-studio/envsim/internal/celestial"
	"github.com/lumora-studio/envsim/internal/clock"
	"github.com/lumora-studio/envsim/internal/curve"
	"github.com/lumora-studio/envsim/internal/light"
	"github.com/lumora-studio/envsim/internal/season"
	"github.com/lumora-studio/envsim/internal/weather"
)

// Per-season baselines merged with the diurnal swing and weather deltas
var seasonBaseTemperature = [4]float64{12, 20, 10, -4}
var seasonBaseHumidity = [4]float64{0.55, 0.45, 0.60, 0.50}

// diurnalAmplitude is the peak temperature swing driven by sun elevation
const diurnalAmplitude = 6.0

// Options configures a Coordinator
type Options struct {
	Latitude         float64
	SecondsPerDay    float64
	TimeScale        float64
	MinTimeScale     float64
	MaxTimeScale     float64
	StartTimeOfDay   float64 // [0,1); the zero value starts at noon
	SeasonLengthDays int
	TransitionSec    float64 // weather transition duration in simulated seconds
	Table            *weather.Table
	Auto             weather.AutoChange
}

// Coordinator owns the environment state and drives the subsystems. It is
// the single writer; each tick builds a complete new state value and swaps
// it in, so readers never observe a half-updated record.
type Coordinator struct {
	clock   *clock.Clock
	seasons *season.Tracker
	machine *weather.Machine
	bus     *Bus

	latitude    float64
	initialized bool

	mu    sync.RWMutex
	state State

	logger *slog.Logger
}

// New assembles a Coordinator. A missing modifier table is a construction
// error; everything downstream assumes one is present.
func New(opts Options, logger *slog.Logger) (*Coordinator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Table == nil {
		return nil, fmt.Errorf("weather modifier table is required")
	}
	if opts.StartTimeOfDay == 0 {
		opts.StartTimeOfDay = 0.5
	}

	c := &Coordinator{
		clock: clock.New(clock.Options{
			SecondsPerDay: opts.SecondsPerDay,
			Scale:         opts.TimeScale,
			MinScale:      opts.MinTimeScale,
			MaxScale:      opts.MaxTimeScale,
			StartTime:     opts.StartTimeOfDay,
		}, logger),
		seasons:  season.New(opts.SeasonLengthDays, logger),
		machine:  weather.New(opts.Table, opts.TransitionSec, opts.Auto, logger),
		bus:      NewBus(),
		latitude: opts.Latitude,
		state:    defaultState(),
		logger:   logger,
	}
	c.seasons.SetProgress(c.state.SeasonProgress)
	c.state.TimeOfDay = c.clock.TimeOfDay()
	return c, nil
}

// Initialize publishes the starting state. Calling it a second time is a
// logged no-op.
func (c *Coordinator) Initialize() {
	if c.initialized {
		c.logger.Warn("Coordinator already initialized")
		return
	}
	c.initialized = true

	c.logger.Info("Environment initialized",
		"season", c.seasons.Season().String(),
		"weather", c.machine.Current().String(),
		"time_of_day", c.clock.TimeOfDay(),
		"latitude", c.latitude)

	c.publishState()
}

// Bus returns the coordinator's event bus
func (c *Coordinator) Bus() *Bus {
	return c.bus
}

// Tick advances the simulation by deltaSeconds of real time and publishes
// the recomputed state
func (c *Coordinator) Tick(deltaSeconds float64) {
	res := c.clock.Advance(deltaSeconds)
	c.applyClockResult(res)

	// Weather runs on simulated seconds so transitions track the clock scale
	simDelta := 0.0
	if !c.clock.IsPaused() && deltaSeconds > 0 {
		simDelta = deltaSeconds * c.clock.Scale()
	}
	if done := c.machine.Update(simDelta); done != nil {
		c.publishWeatherCompletion(done)
	}

	c.recompute()
	c.publishState()
}

// applyClockResult turns a clock result into events and season-day updates
func (c *Coordinator) applyClockResult(res clock.Result) {
	for _, day := range res.Days {
		c.bus.Publish(Event{Kind: EventNewDay, Day: day})
		change := c.seasons.OnNewDay()
		if change.Changed {
			c.publishSeasonChange(change)
		} else {
			c.bus.Publish(Event{
				Kind:     EventSeasonProgressUpdated,
				Season:   c.seasons.Season(),
				Progress: change.Progress,
			})
		}
	}
	if res.HourChanged {
		c.bus.Publish(Event{Kind: EventHourChanged, Hour: res.Hour})
	}
	if res.Moved {
		c.bus.Publish(Event{Kind: EventTimeChanged, Time: res.Time})
	}
}

func (c *Coordinator) publishSeasonChange(change season.Change) {
	c.bus.Publish(Event{
		Kind:       EventSeasonChanged,
		Season:     change.New,
		PrevSeason: change.Old,
		Progress:   change.Progress,
	})
}

func (c *Coordinator) publishWeatherCompletion(done *weather.Completion) {
	// An intensity-only change reports New == Old and fires no WeatherChanged
	if done.New != done.Old {
		c.bus.Publish(Event{
			Kind:        EventWeatherChanged,
			Weather:     done.New,
			PrevWeather: done.Old,
			Intensity:   done.Intensity,
		})
	}
	c.bus.Publish(Event{
		Kind:      EventWeatherIntensityChanged,
		Weather:   done.New,
		Intensity: done.Intensity,
	})
}

// SetTimeOfDay jumps the clock to a normalized time without day-boundary
// side effects
func (c *Coordinator) SetTimeOfDay(t float64) {
	res := c.clock.SetTimeOfDay(t)
	c.bus.Publish(Event{Kind: EventTimeChanged, Time: res.Time})
	c.refresh()
}

// SetTimeScale changes the clock speed
func (c *Coordinator) SetTimeScale(s float64) {
	c.clock.SetScale(s)
}

// Pause stops the simulation clock
func (c *Coordinator) Pause() {
	c.clock.Pause()
}

// Resume restarts the simulation clock
func (c *Coordinator) Resume() {
	c.clock.Resume()
}

// SkipToTime jumps to the given clock time, rolling to the next day when
// that time has already passed
func (c *Coordinator) SkipToTime(hour, minute int) {
	c.applyClockResult(c.clock.SkipToTime(hour, minute))
	c.refresh()
}

// SkipToNextDay jumps to the given clock time tomorrow
func (c *Coordinator) SkipToNextDay(hour, minute int) {
	c.applyClockResult(c.clock.SkipToNextDay(hour, minute))
	c.refresh()
}

// SetSeason switches to the given season, resetting its progress
func (c *Coordinator) SetSeason(s season.Season) {
	change := c.seasons.Set(s)
	if change.Changed {
		c.publishSeasonChange(change)
	}
	c.refresh()
}

// SetSeasonProgress moves progress within the current season
func (c *Coordinator) SetSeasonProgress(p float64) {
	c.seasons.SetProgress(p)
	c.bus.Publish(Event{
		Kind:     EventSeasonProgressUpdated,
		Season:   c.seasons.Season(),
		Progress: c.seasons.Progress(),
	})
	c.refresh()
}

// SetWeather begins a transition toward the target kind
func (c *Coordinator) SetWeather(target weather.Kind, intensity float64) {
	if done := c.machine.SetWeather(target, intensity); done != nil {
		c.publishWeatherCompletion(done)
	}
	c.refresh()
}

// UpdateEnvironment forces an out-of-band recompute and publish without
// advancing time
func (c *Coordinator) UpdateEnvironment() {
	c.refresh()
}

// CurrentState returns a snapshot of the environment state
func (c *Coordinator) CurrentState() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Clock exposes the simulation clock
func (c *Coordinator) Clock() *clock.Clock {
	return c.clock
}

// Seasons exposes the season tracker
func (c *Coordinator) Seasons() *season.Tracker {
	return c.seasons
}

// Weather exposes the weather state machine
func (c *Coordinator) Weather() *weather.Machine {
	return c.machine
}

// refresh recomputes derived fields and publishes, used by command handlers
func (c *Coordinator) refresh() {
	c.recompute()
	c.publishState()
}

// recompute rebuilds the full state record from the subsystems. Derived
// fields are always recomputed from scratch, never carried over.
func (c *Coordinator) recompute() {
	timeOfDay := c.clock.TimeOfDay()
	daysPassed := c.clock.DaysPassed()
	seasonNow := c.seasons.Season()
	progress := c.seasons.Progress()

	dayOfYear := celestial.DayOfYear(int(seasonNow), progress)
	pos := celestial.Compute(timeOfDay, dayOfYear, c.latitude)
	sample := light.Compute(pos.Sun.Elevation)
	eff := c.machine.Effective()

	next := State{
		TimeOfDay:  timeOfDay,
		DaysPassed: daysPassed,

		Season:         seasonNow,
		SeasonProgress: progress,

		CurrentWeather:    c.machine.Current(),
		TargetWeather:     c.machine.Target(),
		WeatherIntensity:  c.machine.Intensity(),
		WeatherTransition: c.machine.Progress(),

		SunElevation:  pos.Sun.Elevation,
		SunAzimuth:    pos.Sun.Azimuth,
		MoonElevation: pos.Moon.Elevation,
		MoonAzimuth:   pos.Moon.Azimuth,

		SunColor:            sample.SunColor,
		AmbientSkyColor:     sample.AmbientSky,
		AmbientEquatorColor: sample.AmbientEquator,
		AmbientGroundColor:  sample.AmbientGround,
		MoonColor:           light.MoonColor,
	}

	sinElev := math.Sin(radians(pos.Sun.Elevation))
	next.Temperature = seasonBaseTemperature[seasonNow] + diurnalAmplitude*sinElev + eff.TemperatureDelta
	next.Humidity = curve.Clamp01(seasonBaseHumidity[seasonNow] + eff.HumidityDelta)
	next.AtmosphericPressure = curve.Clamp(1.0-0.08*eff.CloudTarget, 0.9, 1.05)

	windAngle := float64(seasonNow)*math.Pi/2 + timeOfDay*math.Pi/6
	next.WindDirection = Vec2{X: math.Cos(windAngle), Y: math.Sin(windAngle)}.Normalized()
	next.WindStrength = curve.Clamp01(0.25 * eff.WindMultiplier)

	next.SunIntensity = sample.RenderIntensity * eff.LightMultiplier
	next.AmbientIntensity = sample.AmbientIntensity * (0.5 + 0.5*eff.LightMultiplier)

	illum := celestial.MoonIllumination(celestial.MoonPhase(daysPassed))
	moonUp := math.Max(0, math.Sin(radians(pos.Moon.Elevation)))
	next.MoonIntensity = 0.25 * illum * moonUp

	next.CloudCoverage = eff.CloudTarget
	next.CloudDensity = curve.Clamp01(eff.CloudTarget * 0.9)
	next.FogDensity = eff.FogModifier
	next.FogColor = sample.AmbientEquator.Lerp(light.RGB{R: 0.72, G: 0.74, B: 0.78}, 0.7)

	c.mu.Lock()
	c.state = next
	c.mu.Unlock()
}

// publishState emits the state snapshot after a recompute
func (c *Coordinator) publishState() {
	snap := c.CurrentState()
	c.bus.Publish(Event{Kind: EventStateUpdated, State: &snap})
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
