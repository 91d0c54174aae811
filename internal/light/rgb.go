package light

import "github.com/lumora-studio/envsim/internal/curve"

// RGB is a normalized color in renderer space, channels in [0,1]
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Lerp linearly interpolates toward other by t
func (c RGB) Lerp(other RGB, t float64) RGB {
	return RGB{
		R: curve.Lerp(c.R, other.R, t),
		G: curve.Lerp(c.G, other.G, t),
		B: curve.Lerp(c.B, other.B, t),
	}
}

// Scale multiplies all channels by f, clamped to [0,1]
func (c RGB) Scale(f float64) RGB {
	return RGB{
		R: curve.Clamp01(c.R * f),
		G: curve.Clamp01(c.G * f),
		B: curve.Clamp01(c.B * f),
	}
}

// colorKey is a keyframe on a color ramp
type colorKey struct {
	pos   float64
	color RGB
}

// sampleColorRamp interpolates an ordered color keyframe table, clamping at
// the ends
func sampleColorRamp(keys []colorKey, pos float64) RGB {
	n := len(keys)
	if n == 0 {
		return RGB{}
	}
	if pos <= keys[0].pos {
		return keys[0].color
	}
	if pos >= keys[n-1].pos {
		return keys[n-1].color
	}
	for i := 1; i < n; i++ {
		if pos < keys[i].pos {
			a, b := keys[i-1], keys[i]
			t := (pos - a.pos) / (b.pos - a.pos)
			return a.color.Lerp(b.color, t)
		}
	}
	return keys[n-1].color
}
