// Package celestial computes sun and moon positions from simulated time,
// day of year, and latitude. The model is a standard declination/hour-angle
// approximation, not an ephemeris: the moon is the sun's position
// phase-shifted by half a day, and only its brightness follows the synodic
// cycle.
package celestial

import "math"

// synodicMonth is the mean lunar cycle length in days
const synodicMonth = 29.53

// Position is an apparent sky position in degrees
type Position struct {
	Elevation float64
	Azimuth   float64
}

// Positions holds the sun and moon positions for one instant
type Positions struct {
	Sun  Position
	Moon Position
}

// Compute returns sun and moon positions for the given normalized time of
// day, day of year, and latitude in degrees.
func Compute(timeOfDay float64, dayOfYear int, latitude float64) Positions {
	return Positions{
		Sun:  sunPosition(timeOfDay, dayOfYear, latitude),
		Moon: sunPosition(math.Mod(timeOfDay+0.5, 1), dayOfYear, latitude),
	}
}

// sunPosition evaluates the declination/hour-angle model
func sunPosition(timeOfDay float64, dayOfYear int, latitude float64) Position {
	hourAngle := (timeOfDay - 0.5) * 180
	declination := 23.45 * math.Sin(radians(360*float64(dayOfYear+284)/365))

	sinElev := math.Sin(radians(declination))*math.Sin(radians(latitude)) +
		math.Cos(radians(declination))*math.Cos(radians(latitude))*math.Cos(radians(hourAngle))
	sinElev = math.Max(-1, math.Min(1, sinElev))

	return Position{
		Elevation: degrees(math.Asin(sinElev)),
		// Simplified sweep: east through south to west across the day
		Azimuth: 180 + hourAngle,
	}
}

// Declination returns the sun's declination in degrees for a day of year
func Declination(dayOfYear int) float64 {
	return 23.45 * math.Sin(radians(360*float64(dayOfYear+284)/365))
}

// MoonPhase returns the lunar phase fraction [0,1) for a day counter,
// 0 = new moon, 0.5 = full moon
func MoonPhase(daysPassed int) float64 {
	return math.Mod(float64(daysPassed), synodicMonth) / synodicMonth
}

// MoonIllumination returns the illuminated fraction [0,1] for a phase
func MoonIllumination(phase float64) float64 {
	return (1 - math.Cos(2*math.Pi*phase)) / 2
}

// seasonStartDays anchors each season quarter to the northern-hemisphere
// equinoxes and solstices (spring, summer, autumn, winter)
var seasonStartDays = [4]float64{80, 172, 266, 355}

// DayOfYear maps a season index and progress fraction onto a day of year
func DayOfYear(seasonIndex int, progress float64) int {
	if seasonIndex < 0 || seasonIndex > 3 {
		seasonIndex = 0
	}
	const quarter = 365.0 / 4
	day := seasonStartDays[seasonIndex] + progress*quarter
	return int(math.Mod(day, 365))
}

// SeasonAt inverts DayOfYear: it returns the season quarter containing the
// given day of year and the progress fraction within it
func SeasonAt(dayOfYear int) (seasonIndex int, progress float64) {
	d := math.Mod(float64(dayOfYear), 365)

	seasonIndex = 3 // days before the spring anchor belong to winter
	for i, start := range seasonStartDays {
		if d >= start {
			seasonIndex = i
		}
	}

	offset := d - seasonStartDays[seasonIndex]
	if offset < 0 {
		offset += 365
	}

	const quarter = 365.0 / 4
	progress = offset / quarter
	if progress >= 1 {
		progress = 1 - 1e-9
	}
	return seasonIndex, progress
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
