package simulator

import (
	"github.com/lumora-studio/envsim/internal/environment"
	"github.com/lumora-studio/envsim/pkg/mqtt"
)

// Event payloads published on the envsim/event/# topics

type timePayload struct {
	TimeOfDay float64 `json:"time_of_day"`
}

type hourPayload struct {
	Hour int `json:"hour"`
}

type dayPayload struct {
	Day int `json:"day"`
}

type seasonPayload struct {
	Season     string  `json:"season"`
	PrevSeason string  `json:"prev_season,omitempty"`
	Progress   float64 `json:"progress"`
	Changed    bool    `json:"changed"`
}

type weatherPayload struct {
	Weather     string  `json:"weather"`
	PrevWeather string  `json:"prev_weather,omitempty"`
	Intensity   float64 `json:"intensity"`
}

// bridgeEvents forwards coordinator events onto MQTT. The state topic is
// retained so late subscribers immediately see the current environment.
func (a *Agent) bridgeEvents() {
	bus := a.coordinator.Bus()

	bus.Subscribe(func(e environment.Event) {
		a.publish(mqtt.TopicState, true, e.State)
	}, environment.EventStateUpdated)

	bus.Subscribe(func(e environment.Event) {
		a.publish(mqtt.TopicEventTime, false, timePayload{TimeOfDay: e.Time})
	}, environment.EventTimeChanged)

	bus.Subscribe(func(e environment.Event) {
		a.publish(mqtt.TopicEventHour, false, hourPayload{Hour: e.Hour})
	}, environment.EventHourChanged)

	bus.Subscribe(func(e environment.Event) {
		a.publish(mqtt.TopicEventDay, false, dayPayload{Day: e.Day})
	}, environment.EventNewDay)

	bus.Subscribe(func(e environment.Event) {
		a.publish(mqtt.TopicEventSeason, false, seasonPayload{
			Season:     e.Season.String(),
			PrevSeason: e.PrevSeason.String(),
			Progress:   e.Progress,
			Changed:    true,
		})
	}, environment.EventSeasonChanged)

	bus.Subscribe(func(e environment.Event) {
		a.publish(mqtt.TopicEventSeason, false, seasonPayload{
			Season:   e.Season.String(),
			Progress: e.Progress,
		})
	}, environment.EventSeasonProgressUpdated)

	bus.Subscribe(func(e environment.Event) {
		a.publish(mqtt.TopicEventWeather, false, weatherPayload{
			Weather:     e.Weather.String(),
			PrevWeather: e.PrevWeather.String(),
			Intensity:   e.Intensity,
		})
	}, environment.EventWeatherChanged)
}

func (a *Agent) publish(topic string, retained bool, v any) {
	if err := a.mqtt.PublishJSON(topic, 0, retained, v); err != nil {
		a.logger.Error("Failed to publish event", "topic", topic, "error", err)
	}
}
