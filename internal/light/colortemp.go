package light

import (
	"math"

	"github.com/lumora-studio/envsim/internal/curve"
)

// Color temperature bands by sun elevation: cool moonlit night, a warm dip
// through dawn and dusk near the horizon, neutral daylight at altitude.
var kelvinCurve = curve.New(
	curve.Keyframe{Pos: -90, Value: 4100},
	curve.Keyframe{Pos: -6, Value: 4100},
	curve.Keyframe{Pos: -1, Value: 2000},
	curve.Keyframe{Pos: 0, Value: 2100},
	curve.Keyframe{Pos: 5, Value: 4500},
	curve.Keyframe{Pos: 15, Value: 5800},
	curve.Keyframe{Pos: 45, Value: 6500},
	curve.Keyframe{Pos: 90, Value: 6500},
)

// KelvinFromElevation returns the light color temperature for a sun
// elevation in degrees
func KelvinFromElevation(elevation float64) float64 {
	return kelvinCurve.Sample(elevation)
}

// KelvinToRGB converts a color temperature to normalized RGB using the
// polynomial Planckian-locus approximation. Valid for 1000K-12000K; inputs
// outside that range are clamped.
func KelvinToRGB(kelvin float64) RGB {
	k := curve.Clamp(kelvin, 1000, 12000) / 100

	var r, g, b float64

	// Red saturates below 6600K, then decays by a power law
	if k <= 66 {
		r = 255
	} else {
		r = 329.698727446 * math.Pow(k-60, -0.1332047592)
	}

	// Green rises logarithmically below 6600K, decays above
	if k <= 66 {
		g = 99.4708025861*math.Log(k) - 161.1195681661
	} else {
		g = 288.1221695283 * math.Pow(k-60, -0.0755148492)
	}

	// Blue is absent below ~1900K and saturates above 6600K
	if k >= 66 {
		b = 255
	} else if k <= 19 {
		b = 0
	} else {
		b = 138.5177312231*math.Log(k-10) - 305.0447927307
	}

	return RGB{
		R: curve.Clamp01(r / 255),
		G: curve.Clamp01(g / 255),
		B: curve.Clamp01(b / 255),
	}
}

// SunColor returns the direct sun color for a sun elevation
func SunColor(elevation float64) RGB {
	return KelvinToRGB(KelvinFromElevation(elevation))
}
