package weather

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine(duration float64, auto AutoChange) *Machine {
	return New(DefaultTable(), duration, auto, nil)
}

func TestInitialState(t *testing.T) {
	m := newTestMachine(10, AutoChange{})

	assert.Equal(t, Clear, m.Current())
	assert.Equal(t, Clear, m.Target())
	assert.Equal(t, 1.0, m.Progress())
	assert.Equal(t, DefaultTable().Lookup(Clear), m.Active())
}

func TestTransitionConvergence(t *testing.T) {
	m := newTestMachine(10, AutoChange{})

	done := m.SetWeather(Storm, 0.8)
	require.Nil(t, done, "timed transition must not complete synchronously")
	assert.Equal(t, 0.0, m.Progress())
	assert.Equal(t, Clear, m.Current(), "current stays the old kind until completion")

	completions := 0
	var last *Completion
	for i := 0; i < 20; i++ { // 20 * 1s covers the 10s duration twice
		if c := m.Update(1); c != nil {
			completions++
			last = c
		}
	}

	require.Equal(t, 1, completions, "completion must fire exactly once")
	assert.Equal(t, Storm, last.New)
	assert.Equal(t, Clear, last.Old)
	assert.InDelta(t, 0.8, last.Intensity, 1e-9)
	assert.Equal(t, Storm, m.Current())
	assert.InDelta(t, 0.8, m.Intensity(), 1e-9)
	assert.Equal(t, 1.0, m.Progress())
	assert.Equal(t, DefaultTable().Lookup(Storm), m.Active())
}

func TestTransitionBlendsLinearly(t *testing.T) {
	table := DefaultTable()
	m := New(table, 10, AutoChange{}, nil)

	m.SetWeather(Storm, 1)
	m.Update(5) // halfway

	from := table.Lookup(Clear)
	to := table.Lookup(Storm)
	want := (from.TemperatureDelta + to.TemperatureDelta) / 2
	assert.InDelta(t, want, m.Active().TemperatureDelta, 1e-9)
	assert.InDelta(t, 0.5, m.Progress(), 1e-9)
}

func TestProgressMonotonicDuringTransition(t *testing.T) {
	m := newTestMachine(10, AutoChange{})
	m.SetWeather(Rainy, 0.5)

	prev := m.Progress()
	for i := 0; i < 15; i++ {
		m.Update(1)
		assert.GreaterOrEqual(t, m.Progress(), prev)
		prev = m.Progress()
	}
}

func TestOverrideMidTransitionIsContinuous(t *testing.T) {
	m := newTestMachine(10, AutoChange{})

	m.SetWeather(Storm, 1)
	m.Update(5)
	midBlend := m.Active()

	// Overriding restarts progress but blends from the interpolated tuple
	done := m.SetWeather(Foggy, 0.5)
	require.Nil(t, done)
	assert.Equal(t, 0.0, m.Progress())
	assert.Equal(t, midBlend, m.Active(), "override must not jump the active tuple")

	// A tiny step must stay near the mid-blend value
	m.Update(0.001)
	assert.InDelta(t, midBlend.TemperatureDelta, m.Active().TemperatureDelta, 0.05)
}

func TestSetWeatherSameKindWhileIdle(t *testing.T) {
	m := newTestMachine(10, AutoChange{})

	done := m.SetWeather(Clear, 0.9)

	require.NotNil(t, done, "intensity-only change applies immediately")
	assert.Equal(t, Clear, done.New)
	assert.Equal(t, Clear, done.Old)
	assert.InDelta(t, 0.9, done.Intensity, 1e-9)
	assert.Equal(t, Clear, m.Current())
	assert.Equal(t, Clear, m.Target())
	assert.Equal(t, 1.0, m.Progress(), "no transition may start toward the current kind")
	assert.InDelta(t, 0.9, m.Intensity(), 1e-9)
	assert.Equal(t, DefaultTable().Lookup(Clear), m.Active())
}

func TestSetWeatherRedundantIsNoOp(t *testing.T) {
	m := newTestMachine(10, AutoChange{})

	// Matches the initial kind and intensity exactly
	done := m.SetWeather(Clear, 0.5)

	assert.Nil(t, done)
	assert.Equal(t, 1.0, m.Progress())
	assert.InDelta(t, 0.5, m.Intensity(), 1e-9)
}

func TestSetWeatherBackToCurrentMidTransition(t *testing.T) {
	m := newTestMachine(10, AutoChange{})
	m.SetWeather(Storm, 1)
	m.Update(5)
	midBlend := m.Active()

	done := m.SetWeather(Clear, 0.5)

	require.Nil(t, done)
	assert.Equal(t, Storm, m.Current(), "the abandoned target becomes the discrete current")
	assert.Equal(t, Clear, m.Target())
	assert.Equal(t, 0.0, m.Progress())
	assert.Equal(t, midBlend, m.Active(), "reverting must not jump the active tuple")

	var c *Completion
	for i := 0; i < 12 && c == nil; i++ {
		c = m.Update(1)
	}
	require.NotNil(t, c)
	assert.Equal(t, Clear, c.New)
	assert.Equal(t, Storm, c.Old)
	assert.Equal(t, Clear, m.Current())
	assert.Equal(t, DefaultTable().Lookup(Clear), m.Active())
}

func TestInstantTransitionWhenDurationZero(t *testing.T) {
	m := newTestMachine(0, AutoChange{})

	done := m.SetWeather(Snowy, 0.6)

	require.NotNil(t, done, "zero duration must complete synchronously")
	assert.Equal(t, Snowy, done.New)
	assert.Equal(t, Clear, done.Old)
	assert.Equal(t, Snowy, m.Current())
	assert.Equal(t, 1.0, m.Progress())
}

func TestIntensityClamped(t *testing.T) {
	m := newTestMachine(0, AutoChange{})

	m.SetWeather(Rainy, 1.7)
	assert.Equal(t, 1.0, m.Intensity())

	m.SetWeather(Windy, -0.3)
	assert.Equal(t, 0.0, m.Intensity())
}

func TestAutoChangeDeterministicWithSeed(t *testing.T) {
	auto := AutoChange{
		Enabled:      true,
		Interval:     30,
		MinIntensity: 0.3,
		MaxIntensity: 1.0,
		Seed:         42,
	}

	run := func() []Kind {
		m := newTestMachine(0, auto)
		var picks []Kind
		for i := 0; i < 300; i++ {
			if c := m.Update(1); c != nil {
				picks = append(picks, c.New)
			}
		}
		return picks
	}

	first := run()
	second := run()

	require.NotEmpty(t, first)
	assert.Equal(t, first, second, "seeded runs must pick the same sequence")

	// Each pick differs from its predecessor
	prev := Clear
	for _, k := range first {
		assert.NotEqual(t, prev, k)
		prev = k
	}
}

func TestAutoChangeIntensityBand(t *testing.T) {
	auto := AutoChange{
		Enabled:      true,
		Interval:     10,
		MinIntensity: 0.3,
		MaxIntensity: 1.0,
		Seed:         7,
	}
	m := newTestMachine(0, auto)

	for i := 0; i < 200; i++ {
		if c := m.Update(1); c != nil {
			assert.GreaterOrEqual(t, c.Intensity, 0.3)
			assert.LessOrEqual(t, c.Intensity, 1.0)
		}
	}
}

func TestAutoChangeNeverPicksCurrentMidTransition(t *testing.T) {
	auto := AutoChange{
		Enabled:      true,
		Interval:     3,
		MinIntensity: 0.5,
		MaxIntensity: 0.5,
		Seed:         11,
	}
	// Transitions outlast the interval, so every pick lands mid-blend
	m := newTestMachine(1000, auto)

	for i := 0; i < 500; i++ {
		m.Update(1)
		if m.Progress() < 1 {
			assert.NotEqual(t, m.Current(), m.Target(),
				"a scheduled change must not re-pick the current kind")
		}
	}
	assert.Equal(t, Clear, m.Current(), "no transition ever completed")
}

func TestAutoChangeDisabled(t *testing.T) {
	m := newTestMachine(0, AutoChange{Enabled: false, Interval: 1})

	for i := 0; i < 100; i++ {
		assert.Nil(t, m.Update(1))
	}
	assert.Equal(t, Clear, m.Current())
}

func TestRestoreMidTransition(t *testing.T) {
	m := newTestMachine(10, AutoChange{})

	m.Restore(Resume{
		Current:         Clear,
		Target:          Storm,
		From:            DefaultTable().Lookup(Clear),
		FromIntensity:   0.5,
		TargetIntensity: 0.8,
		Progress:        0.5,
	})

	assert.Equal(t, Clear, m.Current())
	assert.Equal(t, Storm, m.Target())
	assert.InDelta(t, 0.5, m.Progress(), 1e-9)
	assert.InDelta(t, 0.65, m.Intensity(), 1e-9, "halfway between the blend endpoints")

	// Remaining half of the duration finishes the transition
	var done *Completion
	for i := 0; i < 6 && done == nil; i++ {
		done = m.Update(1)
	}
	require.NotNil(t, done)
	assert.Equal(t, Storm, m.Current())
	assert.InDelta(t, 0.8, m.Intensity(), 1e-9)
}

func TestRestoreCompletedTransition(t *testing.T) {
	m := newTestMachine(10, AutoChange{})

	m.Restore(Resume{Current: Snowy, Target: Snowy, TargetIntensity: 0.4, Progress: 1})

	assert.Equal(t, Snowy, m.Current())
	assert.Equal(t, 1.0, m.Progress())
	assert.InDelta(t, 0.4, m.Intensity(), 1e-9)
	assert.Nil(t, m.Update(1))
}

func TestRestoreResumesCommandedIntensity(t *testing.T) {
	src := newTestMachine(10, AutoChange{})
	src.SetWeather(Storm, 0.9)
	src.Update(5)

	from, fromIntensity := src.BlendFrom()
	dst := newTestMachine(10, AutoChange{})
	dst.Restore(Resume{
		Current:         src.Current(),
		Target:          src.Target(),
		From:            from,
		FromIntensity:   fromIntensity,
		TargetIntensity: src.TargetIntensity(),
		Progress:        src.Progress(),
	})

	assert.Equal(t, src.Active(), dst.Active())
	assert.InDelta(t, src.Intensity(), dst.Intensity(), 1e-9)

	// Finishing the resumed transition lands on the commanded intensity,
	// not the mid-blend value it was saved at
	var done *Completion
	for i := 0; i < 6 && done == nil; i++ {
		done = dst.Update(1)
	}
	require.NotNil(t, done)
	assert.InDelta(t, 0.9, done.Intensity, 1e-9)
	assert.InDelta(t, 0.9, dst.Intensity(), 1e-9)
}

func TestIntensityBlendIsMonotone(t *testing.T) {
	m := newTestMachine(10, AutoChange{})
	m.SetWeather(Storm, 1)

	prev := m.Intensity()
	for i := 0; i < 12; i++ {
		m.Update(1)
		if m.Intensity() < prev-1e-9 {
			t.Fatalf("intensity decreased from %f to %f while blending upward", prev, m.Intensity())
		}
		prev = m.Intensity()
	}
	assert.True(t, math.Abs(m.Intensity()-1) < 1e-9)
}
