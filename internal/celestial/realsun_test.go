package celestial

import (
	"math"
	"testing"
	"time"
)

func TestRealElevationDayNight(t *testing.T) {
	noon := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	midnight := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	if got := RealElevation(noon, 0, 0); got < 50 {
		t.Errorf("equinox noon elevation at equator = %f, want well above horizon", got)
	}
	if got := RealElevation(midnight, 0, 0); got > 0 {
		t.Errorf("equinox midnight elevation at equator = %f, want below horizon", got)
	}
}

func TestModelTracksRealSunAtEquatorEquinox(t *testing.T) {
	// The game model and the astronomical reference should agree coarsely
	// at the point where the model is exact by construction.
	wallClock := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	real := RealElevation(wallClock, 0, 0)

	model := Compute(0.5, equinoxDay, 0).Sun.Elevation

	if math.Abs(model-real) > 10 {
		t.Errorf("model noon elevation %f differs from reference %f by more than 10°", model, real)
	}
}

func TestWallClock(t *testing.T) {
	tod, doy := WallClock(time.Date(2025, 6, 21, 18, 0, 0, 0, time.UTC))

	if math.Abs(tod-0.75) > 1e-9 {
		t.Errorf("timeOfDay = %f, want 0.75", tod)
	}
	if doy != 172 {
		t.Errorf("dayOfYear = %d, want 172", doy)
	}
}
