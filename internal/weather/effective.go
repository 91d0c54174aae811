package weather

import (
	"math"

	"github.com/lumora-studio/envsim/internal/curve"
)

// Effective returns the active tuple scaled by the blended intensity.
// Intensity 0.5 is the neutral midpoint: deltas scale by 0.5+intensity and
// multipliers move proportionally away from 1, so low-intensity weather is a
// milder version of the same tuple rather than a different one.
func (m *Machine) Effective() Modifiers {
	s := 0.5 + m.intensity
	a := m.active
	return Modifiers{
		TemperatureDelta: a.TemperatureDelta * s,
		HumidityDelta:    a.HumidityDelta * s,
		WindMultiplier:   math.Max(0, 1+(a.WindMultiplier-1)*s),
		LightMultiplier:  math.Max(0, 1+(a.LightMultiplier-1)*s),
		CloudTarget:      curve.Clamp01(a.CloudTarget * s),
		FogModifier:      curve.Clamp01(a.FogModifier * s),
	}
}
