package clock

import (
	"math"
	"testing"
)

func newTestClock() *Clock {
	return New(Options{SecondsPerDay: 100, Scale: 1, MinScale: 0.01, MaxScale: 100}, nil)
}

func TestAdvanceSingleDayWrap(t *testing.T) {
	c := newTestClock()

	res := c.Advance(100) // exactly one day at scale 1

	if len(res.Days) != 1 {
		t.Fatalf("expected 1 day boundary, got %d", len(res.Days))
	}
	if res.Days[0] != 1 {
		t.Errorf("expected day 1, got %d", res.Days[0])
	}
	if c.DaysPassed() != 1 {
		t.Errorf("DaysPassed = %d, want 1", c.DaysPassed())
	}
	if math.Abs(c.TimeOfDay()) > 1e-9 {
		t.Errorf("TimeOfDay = %f, want 0", c.TimeOfDay())
	}
}

func TestAdvanceMultipleDayWrapsInOneCall(t *testing.T) {
	c := newTestClock()

	res := c.Advance(300) // three days in one call

	if len(res.Days) != 3 {
		t.Fatalf("expected 3 day boundaries, got %d", len(res.Days))
	}
	for i, day := range res.Days {
		if day != i+1 {
			t.Errorf("Days[%d] = %d, want %d", i, day, i+1)
		}
	}
	if c.DaysPassed() != 3 {
		t.Errorf("DaysPassed = %d, want 3", c.DaysPassed())
	}
}

func TestAdvanceRespectsScale(t *testing.T) {
	c := newTestClock()
	c.SetScale(2)

	c.Advance(25) // 25s * 2 / 100s-per-day = half a day

	if math.Abs(c.TimeOfDay()-0.5) > 1e-9 {
		t.Errorf("TimeOfDay = %f, want 0.5", c.TimeOfDay())
	}
}

func TestAdvanceNegativeDeltaIgnored(t *testing.T) {
	c := newTestClock()
	c.SetTimeOfDay(0.25)

	res := c.Advance(-10)

	if res.Moved {
		t.Error("negative delta should not move time")
	}
	if c.TimeOfDay() != 0.25 {
		t.Errorf("TimeOfDay = %f, want 0.25", c.TimeOfDay())
	}
}

func TestAdvanceWhilePaused(t *testing.T) {
	c := newTestClock()
	c.Pause()

	res := c.Advance(50)

	if res.Moved || c.TimeOfDay() != 0 {
		t.Error("paused clock should not advance")
	}

	c.Resume()
	c.Advance(50)
	if math.Abs(c.TimeOfDay()-0.5) > 1e-9 {
		t.Errorf("TimeOfDay after resume = %f, want 0.5", c.TimeOfDay())
	}
}

func TestHourChangedDetection(t *testing.T) {
	c := newTestClock()

	// 1/24 of a day crosses the hour 0 -> 1 boundary
	res := c.Advance(100.0 / 24.0)
	if !res.HourChanged {
		t.Error("expected hour change")
	}
	if res.Hour != 1 {
		t.Errorf("Hour = %d, want 1", res.Hour)
	}

	// A tiny step within the same hour must not report a change
	res = c.Advance(0.01)
	if res.HourChanged {
		t.Error("unexpected hour change for sub-hour step")
	}
}

func TestSetTimeOfDayClampingIdempotence(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"in range", 0.75, 0.75},
		{"negative clamps to zero", -0.5, 0},
		{"above one clamps", 1.5, 1},
		{"midnight", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClock()
			c.SetTimeOfDay(tt.input)
			first := c.TimeOfDay()
			c.SetTimeOfDay(tt.input)
			second := c.TimeOfDay()

			if math.Abs(first-tt.expected) > 1e-6 {
				t.Errorf("TimeOfDay = %f, want %f", first, tt.expected)
			}
			if first != second {
				t.Errorf("second set changed state: %f != %f", first, second)
			}
			if first >= 1 {
				t.Errorf("TimeOfDay %f escaped [0,1)", first)
			}
		})
	}
}

func TestSetTimeOfDayDoesNotWrapDays(t *testing.T) {
	c := newTestClock()
	c.SetTimeOfDay(0.9)
	c.SetTimeOfDay(0.1)

	if c.DaysPassed() != 0 {
		t.Errorf("DaysPassed = %d, want 0", c.DaysPassed())
	}
}

func TestSetScaleClamps(t *testing.T) {
	c := newTestClock()

	c.SetScale(1000)
	if c.Scale() != 100 {
		t.Errorf("Scale = %f, want clamp to 100", c.Scale())
	}

	c.SetScale(0.001)
	if c.Scale() != 0.01 {
		t.Errorf("Scale = %f, want clamp to 0.01", c.Scale())
	}
}

func TestSkipToTime(t *testing.T) {
	c := newTestClock()
	c.SetTimeOfDay(0.5) // noon

	// Skipping to 18:00 stays on the same day
	res := c.SkipToTime(18, 0)
	if len(res.Days) != 0 {
		t.Errorf("expected no day boundary, got %v", res.Days)
	}
	if math.Abs(c.TimeOfDay()-0.75) > 1e-9 {
		t.Errorf("TimeOfDay = %f, want 0.75", c.TimeOfDay())
	}

	// Skipping to 06:00 has already passed, so it wraps to the next day
	res = c.SkipToTime(6, 0)
	if len(res.Days) != 1 {
		t.Fatalf("expected 1 day boundary, got %v", res.Days)
	}
	if c.DaysPassed() != 1 {
		t.Errorf("DaysPassed = %d, want 1", c.DaysPassed())
	}
	if math.Abs(c.TimeOfDay()-0.25) > 1e-9 {
		t.Errorf("TimeOfDay = %f, want 0.25", c.TimeOfDay())
	}
}

func TestSkipToNextDay(t *testing.T) {
	c := newTestClock()
	c.SetTimeOfDay(0.1)

	res := c.SkipToNextDay(8, 30)

	if len(res.Days) != 1 || res.Days[0] != 1 {
		t.Fatalf("expected exactly day 1, got %v", res.Days)
	}
	want := (8.0 + 30.0/60.0) / 24.0
	if math.Abs(c.TimeOfDay()-want) > 1e-9 {
		t.Errorf("TimeOfDay = %f, want %f", c.TimeOfDay(), want)
	}
}
