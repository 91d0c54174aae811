// Package curve provides ordered keyframe tables with piecewise-linear
// sampling. Tunable curves (illuminance bands, color temperature bands,
// ambient response) are expressed as keyframe data instead of editor-bound
// curve assets.
package curve

import "sort"

// Keyframe is a single (position, value) pair on a curve
type Keyframe struct {
	Pos   float64
	Value float64
}

// Curve is an ordered keyframe table sampled by piecewise-linear
// interpolation. Samples outside the keyframe range clamp to the end values.
type Curve struct {
	keys []Keyframe
}

// New creates a curve from keyframes, sorting them by position
func New(keys ...Keyframe) Curve {
	sorted := make([]Keyframe, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Pos < sorted[j].Pos })
	return Curve{keys: sorted}
}

// Sample returns the interpolated value at pos
func (c Curve) Sample(pos float64) float64 {
	n := len(c.keys)
	if n == 0 {
		return 0
	}
	if pos <= c.keys[0].Pos {
		return c.keys[0].Value
	}
	if pos >= c.keys[n-1].Pos {
		return c.keys[n-1].Value
	}

	// Find the first keyframe at or beyond pos
	i := sort.Search(n, func(i int) bool { return c.keys[i].Pos >= pos })
	a, b := c.keys[i-1], c.keys[i]
	if b.Pos == a.Pos {
		return b.Value
	}
	t := (pos - a.Pos) / (b.Pos - a.Pos)
	return a.Value + (b.Value-a.Value)*t
}

// Len returns the number of keyframes
func (c Curve) Len() int {
	return len(c.keys)
}

// Lerp linearly interpolates between a and b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to the range [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to the range [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
