package light

import "github.com/lumora-studio/envsim/internal/curve"

// Ambient triad: indirect skylight with its own looser bands, tuned
// independently of the direct sun output.

var ambientSkyRamp = []colorKey{
	{pos: -90, color: RGB{R: 0.02, G: 0.03, B: 0.10}},
	{pos: -6, color: RGB{R: 0.06, G: 0.08, B: 0.25}},
	{pos: 0, color: RGB{R: 0.12, G: 0.18, B: 0.55}},
	{pos: 15, color: RGB{R: 0.18, G: 0.35, B: 0.80}},
	{pos: 90, color: RGB{R: 0.20, G: 0.42, B: 0.90}},
}

var ambientEquatorRamp = []colorKey{
	{pos: -90, color: RGB{R: 0.04, G: 0.04, B: 0.08}},
	{pos: -6, color: RGB{R: 0.40, G: 0.18, B: 0.24}},
	{pos: 0, color: RGB{R: 0.88, G: 0.45, B: 0.22}},
	{pos: 15, color: RGB{R: 0.62, G: 0.70, B: 0.85}},
	{pos: 90, color: RGB{R: 0.58, G: 0.75, B: 0.95}},
}

var ambientGroundRamp = []colorKey{
	{pos: -90, color: RGB{R: 0.01, G: 0.01, B: 0.02}},
	{pos: -6, color: RGB{R: 0.03, G: 0.03, B: 0.04}},
	{pos: 0, color: RGB{R: 0.08, G: 0.06, B: 0.05}},
	{pos: 15, color: RGB{R: 0.10, G: 0.09, B: 0.07}},
	{pos: 90, color: RGB{R: 0.12, G: 0.10, B: 0.08}},
}

var ambientIntensityCurve = curve.New(
	curve.Keyframe{Pos: -90, Value: 0.02},
	curve.Keyframe{Pos: -6, Value: 0.08},
	curve.Keyframe{Pos: 0, Value: 0.35},
	curve.Keyframe{Pos: 15, Value: 0.8},
	curve.Keyframe{Pos: 45, Value: 1.0},
	curve.Keyframe{Pos: 90, Value: 1.1},
)

// AmbientSky returns the sky ambient color for a sun elevation
func AmbientSky(elevation float64) RGB {
	return sampleColorRamp(ambientSkyRamp, elevation)
}

// AmbientEquator returns the horizon ambient color for a sun elevation
func AmbientEquator(elevation float64) RGB {
	return sampleColorRamp(ambientEquatorRamp, elevation)
}

// AmbientGround returns the ground ambient color for a sun elevation
func AmbientGround(elevation float64) RGB {
	return sampleColorRamp(ambientGroundRamp, elevation)
}

// AmbientIntensity returns the indirect light intensity for a sun elevation
func AmbientIntensity(elevation float64) float64 {
	return ambientIntensityCurve.Sample(elevation)
}
