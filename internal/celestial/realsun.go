package celestial

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// RealElevation returns the real-world sun elevation in degrees for a
// wall-clock time and location. Used for wall-clock sync and to sanity
// check the game model against an independent implementation.
func RealElevation(t time.Time, lat, lon float64) float64 {
	pos := suncalc.GetPosition(t, lat, lon)
	return pos.Altitude * 180 / math.Pi
}

// RealAzimuth returns the real-world sun azimuth in degrees, measured from
// north through east to match the game model's convention.
func RealAzimuth(t time.Time, lat, lon float64) float64 {
	pos := suncalc.GetPosition(t, lat, lon)
	// suncalc measures azimuth from south, positive westward
	return math.Mod(pos.Azimuth*180/math.Pi+180+360, 360)
}

// WallClock converts a wall-clock time into the simulation's normalized
// time of day and day of year.
func WallClock(t time.Time) (timeOfDay float64, dayOfYear int) {
	secs := float64(t.Hour())*3600 + float64(t.Minute())*60 + float64(t.Second())
	return secs / 86400, t.YearDay()
}
