// Package light converts sun elevation into renderer-space lighting: a
// physical lux value, an artistically compressed render intensity, a color
// temperature mapped to RGB along the Planckian locus, and an independent
// ambient sky/equator/ground triad.
package light

// Sample is the full lighting output for one sun elevation
type Sample struct {
	Lux              float64
	RenderIntensity  float64
	Kelvin           float64
	SunColor         RGB
	AmbientIntensity float64
	AmbientSky       RGB
	AmbientEquator   RGB
	AmbientGround    RGB
}

// Compute evaluates the full model for a sun elevation in degrees
func Compute(sunElevation float64) Sample {
	lux := LuxFromElevation(sunElevation)
	kelvin := KelvinFromElevation(sunElevation)

	return Sample{
		Lux:              lux,
		RenderIntensity:  RenderIntensityFromLux(lux),
		Kelvin:           kelvin,
		SunColor:         KelvinToRGB(kelvin),
		AmbientIntensity: AmbientIntensity(sunElevation),
		AmbientSky:       AmbientSky(sunElevation),
		AmbientEquator:   AmbientEquator(sunElevation),
		AmbientGround:    AmbientGround(sunElevation),
	}
}

// MoonColor is the fixed cool moonlight tint
var MoonColor = RGB{R: 0.66, G: 0.73, B: 0.86}
