package light

import "github.com/lumora-studio/envsim/internal/curve"

// Stage 1: physical illuminance. Keyframes follow real-world reference
// levels: moonless night around 0.0002 lux, civil twilight rising toward a
// few hundred lux at the horizon, full overhead sun near 120k lux.
var luxCurve = curve.New(
	curve.Keyframe{Pos: -90, Value: 0.0001},
	curve.Keyframe{Pos: -6, Value: 0.0002},
	curve.Keyframe{Pos: 0, Value: 400},
	curve.Keyframe{Pos: 6, Value: 10000},
	curve.Keyframe{Pos: 30, Value: 60000},
	curve.Keyframe{Pos: 60, Value: 100000},
	curve.Keyframe{Pos: 90, Value: 120000},
)

// Stage 2: artistic compression of lux onto the renderer's intensity
// range, so full sun does not overexpose. Not a physical quantity.
var renderIntensityCurve = curve.New(
	curve.Keyframe{Pos: 0, Value: 0},
	curve.Keyframe{Pos: 0.0002, Value: 0},
	curve.Keyframe{Pos: 1, Value: 0.05},
	curve.Keyframe{Pos: 400, Value: 0.9},
	curve.Keyframe{Pos: 10000, Value: 1.8},
	curve.Keyframe{Pos: 60000, Value: 2.05},
	curve.Keyframe{Pos: 120000, Value: 2.2},
)

// LuxFromElevation returns the physical illuminance for a sun elevation in
// degrees
func LuxFromElevation(elevation float64) float64 {
	return luxCurve.Sample(elevation)
}

// RenderIntensityFromLux compresses a lux value into render intensity
func RenderIntensityFromLux(lux float64) float64 {
	return renderIntensityCurve.Sample(lux)
}

// RenderIntensity returns the render intensity for a sun elevation
func RenderIntensity(elevation float64) float64 {
	return RenderIntensityFromLux(LuxFromElevation(elevation))
}
