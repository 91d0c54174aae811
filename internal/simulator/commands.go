package simulator

import (
	"encoding/json"

	"github.com/lumora-studio/envsim/internal/season"
	"github.com/lumora-studio/envsim/internal/weather"
	"github.com/lumora-studio/envsim/pkg/mqtt"
)

// Command payloads accepted on the envsim/cmd/# topics. Out-of-range values
// are clamped by the coordinator, never rejected.

type timeCommand struct {
	TimeOfDay *float64 `json:"time_of_day,omitempty"`
	Scale     *float64 `json:"scale,omitempty"`
	Action    string   `json:"action,omitempty"` // pause, resume, skip_to_time, skip_to_next_day
	Hour      int      `json:"hour,omitempty"`
	Minute    int      `json:"minute,omitempty"`
}

type seasonCommand struct {
	Season   string   `json:"season,omitempty"`
	Progress *float64 `json:"progress,omitempty"`
	Advance  bool     `json:"advance,omitempty"`
}

type weatherCommand struct {
	Weather   string  `json:"weather"`
	Intensity float64 `json:"intensity"`
}

// handleCommand routes an incoming command message to the coordinator
func (a *Agent) handleCommand(msg mqtt.Message) {
	topic := msg.Topic()
	kind := mqtt.CommandKind(topic)

	a.logger.Debug("Received command", "topic", topic, "size", len(msg.Payload()))

	switch kind {
	case "time":
		a.handleTimeCommand(msg.Payload())
	case "season":
		a.handleSeasonCommand(msg.Payload())
	case "weather":
		a.handleWeatherCommand(msg.Payload())
	default:
		a.logger.Warn("Ignoring unknown command topic", "topic", topic)
	}
}

func (a *Agent) handleTimeCommand(payload []byte) {
	var cmd timeCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		a.logger.Error("Failed to parse time command", "error", err)
		return
	}

	if cmd.Scale != nil {
		a.coordinator.SetTimeScale(*cmd.Scale)
	}
	if cmd.TimeOfDay != nil {
		a.coordinator.SetTimeOfDay(*cmd.TimeOfDay)
	}

	switch cmd.Action {
	case "":
	case "pause":
		a.coordinator.Pause()
	case "resume":
		a.coordinator.Resume()
	case "skip_to_time":
		a.coordinator.SkipToTime(cmd.Hour, cmd.Minute)
	case "skip_to_next_day":
		a.coordinator.SkipToNextDay(cmd.Hour, cmd.Minute)
	default:
		a.logger.Warn("Ignoring unknown time action", "action", cmd.Action)
	}
}

func (a *Agent) handleSeasonCommand(payload []byte) {
	var cmd seasonCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		a.logger.Error("Failed to parse season command", "error", err)
		return
	}

	if cmd.Season != "" {
		s, err := season.Parse(cmd.Season)
		if err != nil {
			a.logger.Warn("Ignoring unknown season", "season", cmd.Season)
		} else {
			a.coordinator.SetSeason(s)
		}
	}
	if cmd.Progress != nil {
		a.coordinator.SetSeasonProgress(*cmd.Progress)
	}
	if cmd.Advance {
		a.coordinator.SetSeason(a.coordinator.Seasons().Season().Next())
	}
}

func (a *Agent) handleWeatherCommand(payload []byte) {
	var cmd weatherCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		a.logger.Error("Failed to parse weather command", "error", err)
		return
	}

	kind, err := weather.ParseKind(cmd.Weather)
	if err != nil {
		a.logger.Warn("Ignoring unknown weather kind", "weather", cmd.Weather)
		return
	}
	a.coordinator.SetWeather(kind, cmd.Intensity)
}
