// Package weather drives the weather state machine: a fixed set of weather
// kinds, a modifier table, and timed linear blending between tuples.
package weather

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/lumora-studio/envsim/internal/curve"
)

// AutoChange configures scheduled random weather changes
type AutoChange struct {
	Enabled      bool
	Interval     float64 // simulated seconds between changes
	MinIntensity float64
	MaxIntensity float64
	Seed         int64 // 0 = time-based
}

// Completion reports a finished transition or an immediate intensity-only
// change (New equals Old). WeatherChanged and WeatherIntensityChanged fire
// exactly once per completion.
type Completion struct {
	New       Kind
	Old       Kind
	Intensity float64
}

// Machine is the weather state machine. At most one transition is active at
// a time; starting a new one cancels the blend in flight.
type Machine struct {
	table *Table

	current Kind
	target  Kind

	intensity       float64 // blended intensity for the active tuple
	fromIntensity   float64
	targetIntensity float64

	active   Modifiers // blended tuple consumed by the coordinator
	fromMods Modifiers // blend source captured when the transition began

	duration float64 // transition duration in simulated seconds
	elapsed  float64
	progress float64 // [0,1], 1 when idle

	auto      AutoChange
	sinceAuto float64
	rng       *rand.Rand

	logger *slog.Logger
}

// New creates a Machine starting in clear weather at full transition
func New(table *Table, transitionDuration float64, auto AutoChange, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	if transitionDuration <= 0 {
		logger.Warn("Weather transitions will apply instantly", "transition_duration", transitionDuration)
		transitionDuration = 0
	}

	seed := auto.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := &Machine{
		table:           table,
		current:         Clear,
		target:          Clear,
		intensity:       0.5,
		fromIntensity:   0.5,
		targetIntensity: 0.5,
		duration:        transitionDuration,
		progress:        1,
		auto:            auto,
		rng:             rand.New(rand.NewSource(seed)),
		logger:          logger,
	}
	m.active = table.Lookup(Clear)
	m.fromMods = m.active
	return m
}

// SetWeather begins a timed blend toward the target kind. The blend starts
// from the currently active interpolated tuple, so overriding a transition
// in flight never produces a value discontinuity. Returns a completion
// immediately when the configured duration is zero or only the intensity
// changed.
func (m *Machine) SetWeather(target Kind, intensity float64) *Completion {
	if !target.Valid() {
		m.logger.Warn("Ignoring unknown weather kind", "kind", int(target))
		return nil
	}
	if intensity < 0 || intensity > 1 {
		m.logger.Warn("Clamping out-of-range weather intensity", "value", intensity)
	}
	intensity = curve.Clamp01(intensity)

	// Requesting the kind that is already in effect never starts a
	// transition: progress stays 1 and only the intensity moves.
	if target == m.current && m.progress >= 1 {
		if intensity == m.intensity {
			m.logger.Warn("Ignoring redundant weather change",
				"weather", target.String(), "intensity", intensity)
			return nil
		}
		m.intensity = intensity
		m.fromIntensity = intensity
		m.targetIntensity = intensity
		m.logger.Info("Weather intensity updated",
			"weather", m.current.String(), "intensity", intensity)
		return &Completion{New: m.current, Old: m.current, Intensity: intensity}
	}

	// Reverting a transition in flight back to its origin: the abandoned
	// target becomes the discrete current kind, so current and target only
	// ever match when the blend is complete.
	if target == m.current && m.progress < 1 {
		m.current = m.target
	}

	m.fromMods = m.active
	m.fromIntensity = m.intensity
	m.target = target
	m.targetIntensity = intensity
	m.elapsed = 0

	if m.duration <= 0 {
		return m.complete()
	}

	m.progress = 0
	m.logger.Info("Weather transition started",
		"from", m.current.String(),
		"to", target.String(),
		"intensity", intensity,
		"duration_sec", m.duration)
	return nil
}

// Update advances the active transition and the auto-change schedule by dt
// simulated seconds. Returns a completion when a transition finishes this
// tick, nil otherwise.
func (m *Machine) Update(dt float64) *Completion {
	if dt < 0 {
		return nil
	}

	var done *Completion

	if m.auto.Enabled && m.auto.Interval > 0 {
		m.sinceAuto += dt
		if m.sinceAuto >= m.auto.Interval {
			m.sinceAuto = 0
			done = m.SetWeather(m.pickRandomKind(), m.pickRandomIntensity())
		}
	}

	if m.progress < 1 {
		m.elapsed += dt
		p := curve.Clamp01(m.elapsed / m.duration)
		m.progress = p
		m.active = lerpModifiers(m.fromMods, m.table.Lookup(m.target), p)
		m.intensity = curve.Lerp(m.fromIntensity, m.targetIntensity, p)
		if p >= 1 {
			done = m.complete()
		}
	}

	return done
}

// complete finalizes the active transition
func (m *Machine) complete() *Completion {
	old := m.current
	m.current = m.target
	m.intensity = m.targetIntensity
	m.active = m.table.Lookup(m.current)
	m.progress = 1

	m.logger.Info("Weather transition complete",
		"weather", m.current.String(),
		"intensity", m.intensity)
	return &Completion{New: m.current, Old: old, Intensity: m.intensity}
}

func (m *Machine) pickRandomKind() Kind {
	// Uniform over the kinds other than the current and target ones, so a
	// scheduled change mid-transition never re-picks the weather in effect
	for {
		k := Kind(m.rng.Intn(KindCount))
		if k != m.current && k != m.target {
			return k
		}
	}
}

func (m *Machine) pickRandomIntensity() float64 {
	return m.auto.MinIntensity + m.rng.Float64()*(m.auto.MaxIntensity-m.auto.MinIntensity)
}

// Current returns the current discrete weather kind
func (m *Machine) Current() Kind {
	return m.current
}

// Target returns the transition target kind
func (m *Machine) Target() Kind {
	return m.target
}

// Intensity returns the blended weather intensity [0,1]
func (m *Machine) Intensity() float64 {
	return m.intensity
}

// TargetIntensity returns the intensity the active transition is heading to;
// equal to Intensity when the machine is idle
func (m *Machine) TargetIntensity() float64 {
	return m.targetIntensity
}

// BlendFrom returns the tuple and intensity the active transition blends from
func (m *Machine) BlendFrom() (Modifiers, float64) {
	return m.fromMods, m.fromIntensity
}

// Progress returns the transition progress [0,1], 1 when idle
func (m *Machine) Progress() float64 {
	return m.progress
}

// Active returns the blended modifier tuple for this tick
func (m *Machine) Active() Modifiers {
	return m.active
}

// Table returns the modifier table in effect
func (m *Machine) Table() *Table {
	return m.table
}

// Resume is the weather machine's persisted position: the discrete kinds
// plus the blend source and commanded target intensity of any transition in
// flight.
type Resume struct {
	Current         Kind
	Target          Kind
	From            Modifiers
	FromIntensity   float64
	TargetIntensity float64
	Progress        float64
}

// Restore overwrites the machine state, used when resuming from a snapshot.
// A partially complete transition carries its blend source and commanded
// intensity, so it finishes exactly where the interrupted one would have.
func (m *Machine) Restore(r Resume) {
	if !r.Current.Valid() || !r.Target.Valid() {
		m.logger.Warn("Ignoring snapshot with unknown weather kinds",
			"current", int(r.Current), "target", int(r.Target))
		return
	}

	m.current = r.Current
	m.target = r.Target
	m.fromMods = r.From
	m.fromIntensity = curve.Clamp01(r.FromIntensity)
	m.targetIntensity = curve.Clamp01(r.TargetIntensity)
	m.progress = curve.Clamp01(r.Progress)

	if m.progress >= 1 || m.duration <= 0 {
		m.current = r.Target
		m.intensity = m.targetIntensity
		m.active = m.table.Lookup(r.Target)
		m.fromMods = m.active
		m.fromIntensity = m.intensity
		m.progress = 1
		m.elapsed = 0
		return
	}

	m.elapsed = m.progress * m.duration
	m.active = lerpModifiers(m.fromMods, m.table.Lookup(r.Target), m.progress)
	m.intensity = curve.Lerp(m.fromIntensity, m.targetIntensity, m.progress)
}
