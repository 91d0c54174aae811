package environment

import (
	"math"

	"github.com/lumora-studio/envsim/internal/light"
	"github.com/lumora-studio/envsim/internal/season"
	"github.com/lumora-studio/envsim/internal/weather"
)

// Vec2 is a 2D direction on the ground plane
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Normalized returns v scaled to unit length. The zero vector maps to north.
func (v Vec2) Normalized() Vec2 {
	l := math.Hypot(v.X, v.Y)
	if l == 0 {
		return Vec2{X: 0, Y: 1}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// State is the shared environmental record. The coordinator is its only
// writer and swaps in a complete new value each tick; everyone else reads a
// snapshot that stays valid until the next publish.
type State struct {
	TimeOfDay  float64 `json:"time_of_day"`
	DaysPassed int     `json:"days_passed"`

	Season         season.Season `json:"season"`
	SeasonProgress float64       `json:"season_progress"`

	CurrentWeather    weather.Kind `json:"current_weather"`
	TargetWeather     weather.Kind `json:"target_weather"`
	WeatherIntensity  float64      `json:"weather_intensity"`
	WeatherTransition float64      `json:"weather_transition"`

	Temperature         float64 `json:"temperature"`
	Humidity            float64 `json:"humidity"`
	AtmosphericPressure float64 `json:"atmospheric_pressure"`
	WindDirection       Vec2    `json:"wind_direction"`
	WindStrength        float64 `json:"wind_strength"`

	SunElevation  float64 `json:"sun_elevation"`
	SunAzimuth    float64 `json:"sun_azimuth"`
	MoonElevation float64 `json:"moon_elevation"`
	MoonAzimuth   float64 `json:"moon_azimuth"`

	SunColor            light.RGB `json:"sun_color"`
	AmbientSkyColor     light.RGB `json:"ambient_sky_color"`
	AmbientEquatorColor light.RGB `json:"ambient_equator_color"`
	AmbientGroundColor  light.RGB `json:"ambient_ground_color"`
	MoonColor           light.RGB `json:"moon_color"`
	SunIntensity        float64   `json:"sun_intensity"`
	AmbientIntensity    float64   `json:"ambient_intensity"`
	MoonIntensity       float64   `json:"moon_intensity"`

	CloudCoverage float64   `json:"cloud_coverage"`
	CloudDensity  float64   `json:"cloud_density"`
	FogDensity    float64   `json:"fog_density"`
	FogColor      light.RGB `json:"fog_color"`
}

// defaultState is the documented starting point: spring noon, clear skies,
// a mild 20 degrees.
func defaultState() State {
	return State{
		TimeOfDay:           0.5,
		Season:              season.Spring,
		SeasonProgress:      0.5,
		CurrentWeather:      weather.Clear,
		TargetWeather:       weather.Clear,
		WeatherIntensity:    0.5,
		WeatherTransition:   1,
		Temperature:         20,
		Humidity:            0.5,
		AtmosphericPressure: 1,
		WindDirection:       Vec2{X: 0, Y: 1},
		WindStrength:        0.25,
		MoonColor:           light.MoonColor,
	}
}
