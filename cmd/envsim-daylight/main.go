// envsim-daylight prints a daylight table for one simulated day: the
// simplified celestial model side by side with the astronomical position for
// the same place and date, plus the derived lighting values. Useful for
// eyeballing how far the simulation drifts from reality at a given latitude.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/lumora-studio/envsim/internal/celestial"
	"github.com/lumora-studio/envsim/internal/light"
)

func main() {
	latitude := pflag.Float64("latitude", 60.1695, "Geographic latitude in degrees")
	longitude := pflag.Float64("longitude", 24.9354, "Geographic longitude in degrees (astronomical reference only)")
	date := pflag.String("date", "", "Date as YYYY-MM-DD (default today)")
	steps := pflag.Int("steps", 24, "Number of samples across the day")
	pflag.Parse()

	day := time.Now()
	if *date != "" {
		parsed, err := time.Parse("2006-01-02", *date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid date %q: %v\n", *date, err)
			os.Exit(1)
		}
		day = parsed
	}
	dayOfYear := day.YearDay()

	fmt.Printf("Daylight table for %s at latitude %.4f (day of year %d)\n\n",
		day.Format("2006-01-02"), *latitude, dayOfYear)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "time\tmodel elev\treal elev\tlux\tkelvin\tintensity\tambient")

	for i := 0; i < *steps; i++ {
		timeOfDay := float64(i) / float64(*steps)
		clock := time.Date(day.Year(), day.Month(), day.Day(),
			0, 0, 0, 0, time.UTC).Add(time.Duration(timeOfDay * 24 * float64(time.Hour)))

		pos := celestial.Compute(timeOfDay, dayOfYear, *latitude)
		real := celestial.RealElevation(clock, *latitude, *longitude)
		sample := light.Compute(pos.Sun.Elevation)

		fmt.Fprintf(w, "%02d:%02d\t%7.2f\t%7.2f\t%9.1f\t%5.0fK\t%5.2f\t%5.2f\n",
			clock.Hour(), clock.Minute(),
			pos.Sun.Elevation, real,
			sample.Lux, sample.Kelvin,
			sample.RenderIntensity, sample.AmbientIntensity)
	}
	w.Flush()
}
