package mqtt

// Topic layout for the simulation service.
//
// State and event topics are outputs; command topics are inputs that map
// onto the coordinator command API.
const (
	// TopicState carries the latest EnvironmentState snapshot (retained)
	TopicState = "envsim/state"

	// Event topics (one per event kind)
	TopicEventTime    = "envsim/event/time"
	TopicEventHour    = "envsim/event/hour"
	TopicEventDay     = "envsim/event/day"
	TopicEventSeason  = "envsim/event/season"
	TopicEventWeather = "envsim/event/weather"

	// Command topics (input)
	TopicCommandAll     = "envsim/cmd/+"
	TopicCommandTime    = "envsim/cmd/time"
	TopicCommandSeason  = "envsim/cmd/season"
	TopicCommandWeather = "envsim/cmd/weather"
)

// CommandKind extracts the command kind from a command topic
// envsim/cmd/{kind} -> {kind}; returns "" for anything else
func CommandKind(topic string) string {
	const prefix = "envsim/cmd/"
	if len(topic) <= len(prefix) || topic[:len(prefix)] != prefix {
		return ""
	}
	return topic[len(prefix):]
}
