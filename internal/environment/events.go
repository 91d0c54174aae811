package environment

import (
	"sync"

	"github.com/lumora-studio/envsim/internal/season"
	"github.com/lumora-studio/envsim/internal/weather"
)

// EventKind identifies what an event carries
type EventKind string

const (
	EventTimeChanged             EventKind = "time_changed"
	EventHourChanged             EventKind = "hour_changed"
	EventNewDay                  EventKind = "new_day"
	EventSeasonChanged           EventKind = "season_changed"
	EventSeasonProgressUpdated   EventKind = "season_progress_updated"
	EventWeatherChanged          EventKind = "weather_changed"
	EventWeatherIntensityChanged EventKind = "weather_intensity_changed"
	EventStateUpdated            EventKind = "state_updated"
)

// Event is one simulation event. Only the fields relevant to the kind are
// populated; State is set for state_updated events.
type Event struct {
	Kind EventKind

	Time float64
	Hour int
	Day  int

	Season     season.Season
	PrevSeason season.Season
	Progress   float64

	Weather     weather.Kind
	PrevWeather weather.Kind
	Intensity   float64

	State *State
}

// Handler receives events synchronously on the publishing goroutine
type Handler func(Event)

// Bus is an in-process event dispatcher scoped to one coordinator. Handlers
// run synchronously in subscription order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventKind][]Handler
	all      []Handler
}

// NewBus creates an empty Bus
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventKind][]Handler)}
}

// Subscribe registers a handler for the given kinds, or for every event when
// no kinds are given
func (b *Bus) Subscribe(h Handler, kinds ...EventKind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(kinds) == 0 {
		b.all = append(b.all, h)
		return
	}
	for _, k := range kinds {
		b.handlers[k] = append(b.handlers[k], h)
	}
}

// Publish delivers an event to all matching handlers
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	matched := b.handlers[e.Kind]
	all := b.all
	b.mu.RUnlock()

	for _, h := range matched {
		h(e)
	}
	for _, h := range all {
		h(e)
	}
}
