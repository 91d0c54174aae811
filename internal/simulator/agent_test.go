package simulator

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumora-studio/envsim/internal/season"
	"github.com/lumora-studio/envsim/internal/weather"
	"github.com/lumora-studio/envsim/pkg/config"
	"github.com/lumora-studio/envsim/pkg/mqtt"
	"github.com/lumora-studio/envsim/pkg/redis"
)

// fakeMQTT records published messages and registered subscriptions
type fakeMQTT struct {
	mu        sync.Mutex
	published []publishedMessage
	handlers  map[string]mqtt.MessageHandler
}

type publishedMessage struct {
	topic    string
	retained bool
	payload  []byte
}

func newFakeMQTT() *fakeMQTT {
	return &fakeMQTT{handlers: make(map[string]mqtt.MessageHandler)}
}

func (f *fakeMQTT) Connect(context.Context) error { return nil }
func (f *fakeMQTT) Disconnect()                   {}
func (f *fakeMQTT) IsConnected() bool             { return true }

func (f *fakeMQTT) Subscribe(topic string, _ byte, handler mqtt.MessageHandler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[topic] = handler
	return nil
}

func (f *fakeMQTT) Publish(topic string, _ byte, retained bool, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, publishedMessage{topic: topic, retained: retained, payload: payload})
	return nil
}

func (f *fakeMQTT) PublishJSON(topic string, qos byte, retained bool, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return f.Publish(topic, qos, retained, data)
}

func (f *fakeMQTT) onTopic(topic string) []publishedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []publishedMessage
	for _, m := range f.published {
		if m.topic == topic {
			out = append(out, m)
		}
	}
	return out
}

// fakeMessage is an incoming MQTT message for command tests
type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Topic() string   { return m.topic }
func (m fakeMessage) Payload() []byte { return m.payload }

// noopRedis satisfies the Redis interface without storing anything
type noopRedis struct{}

func (noopRedis) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (noopRedis) Get(context.Context, string) (string, error)                   { return "", nil }
func (noopRedis) ZAdd(context.Context, string, float64, interface{}) error      { return nil }
func (noopRedis) ZRemRangeByScore(context.Context, string, string, string) error {
	return nil
}
func (noopRedis) ZCard(context.Context, string) (int64, error) { return 0, nil }
func (noopRedis) ZRevRangeByScoreWithScores(context.Context, string, float64, float64, int64, int64) ([]redis.ZMember, error) {
	return nil, nil
}
func (noopRedis) Expire(context.Context, string, time.Duration) error { return nil }
func (noopRedis) Ping(context.Context) error                          { return nil }
func (noopRedis) Close() error                                        { return nil }

// recordingRedis records the order of writes and closes for shutdown tests
type recordingRedis struct {
	noopRedis
	mu  sync.Mutex
	ops []string
}

func (r *recordingRedis) Set(_ context.Context, key string, _ interface{}, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "set:"+key)
	return nil
}

func (r *recordingRedis) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "close")
	return nil
}

func (r *recordingRedis) operations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

func newTestAgent(t *testing.T) (*Agent, *fakeMQTT) {
	t.Helper()
	cfg := config.NewConfig()
	cfg.SecondsPerDay = 100
	cfg.SeasonLengthDays = 10

	broker := newFakeMQTT()
	agent, err := NewAgent(broker, noopRedis{}, nil, cfg, nil)
	require.NoError(t, err)
	return agent, broker
}

func TestNewAgentBuildsCoordinatorFromConfig(t *testing.T) {
	agent, _ := newTestAgent(t)

	state := agent.Coordinator().CurrentState()
	assert.Equal(t, season.Spring, state.Season)
	assert.Equal(t, weather.Clear, state.CurrentWeather)
	assert.InDelta(t, 0.5, state.TimeOfDay, 1e-9)
	assert.NotEmpty(t, agent.SessionID())
}

func TestStatePublishedRetained(t *testing.T) {
	agent, broker := newTestAgent(t)

	agent.bridgeEvents()
	agent.Coordinator().Initialize()

	msgs := broker.onTopic(mqtt.TopicState)
	require.NotEmpty(t, msgs)
	assert.True(t, msgs[0].retained, "state topic must be retained")

	var state map[string]any
	require.NoError(t, json.Unmarshal(msgs[0].payload, &state))
	assert.Contains(t, state, "time_of_day")
	assert.Contains(t, state, "temperature")
}

func TestDayEventBridged(t *testing.T) {
	agent, broker := newTestAgent(t)
	agent.bridgeEvents()
	agent.Coordinator().Initialize()

	agent.Coordinator().Tick(100) // one full simulated day

	days := broker.onTopic(mqtt.TopicEventDay)
	require.Len(t, days, 1)

	var payload dayPayload
	require.NoError(t, json.Unmarshal(days[0].payload, &payload))
	assert.Equal(t, 1, payload.Day)
}

func TestWeatherCommand(t *testing.T) {
	agent, _ := newTestAgent(t)

	agent.handleCommand(fakeMessage{
		topic:   mqtt.TopicCommandWeather,
		payload: []byte(`{"weather":"storm","intensity":0.9}`),
	})

	state := agent.Coordinator().CurrentState()
	assert.Equal(t, weather.Storm, state.TargetWeather)
}

func TestSeasonCommand(t *testing.T) {
	agent, _ := newTestAgent(t)

	agent.handleCommand(fakeMessage{
		topic:   mqtt.TopicCommandSeason,
		payload: []byte(`{"season":"winter","progress":0.25}`),
	})

	state := agent.Coordinator().CurrentState()
	assert.Equal(t, season.Winter, state.Season)
	assert.InDelta(t, 0.25, state.SeasonProgress, 1e-9)
}

func TestTimeCommandPauseAndScale(t *testing.T) {
	agent, _ := newTestAgent(t)

	agent.handleCommand(fakeMessage{
		topic:   mqtt.TopicCommandTime,
		payload: []byte(`{"scale":4,"action":"pause"}`),
	})

	clock := agent.Coordinator().Clock()
	assert.Equal(t, 4.0, clock.Scale())
	assert.True(t, clock.IsPaused())
}

func TestStopWaitsForFinalSnapshot(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SecondsPerDay = 100
	cfg.TickIntervalMs = 5

	rec := &recordingRedis{}
	agent, err := NewAgent(newFakeMQTT(), rec, nil, cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go agent.Start(ctx)

	time.Sleep(20 * time.Millisecond) // let the run loop tick
	cancel()
	require.NoError(t, agent.Stop())

	ops := rec.operations()
	require.NotEmpty(t, ops)
	assert.Equal(t, "close", ops[len(ops)-1], "the connection closes last")

	var saves int
	for _, op := range ops[:len(ops)-1] {
		if op == "set:"+redis.SnapshotKey(agent.SessionID()) {
			saves++
		}
	}
	assert.GreaterOrEqual(t, saves, 1, "the shutdown snapshot lands before the close")
}

func TestUnknownCommandIgnored(t *testing.T) {
	agent, _ := newTestAgent(t)
	before := agent.Coordinator().CurrentState()

	agent.handleCommand(fakeMessage{
		topic:   "envsim/cmd/bogus",
		payload: []byte(`{}`),
	})
	agent.handleCommand(fakeMessage{
		topic:   mqtt.TopicCommandWeather,
		payload: []byte(`{"weather":"volcano","intensity":1}`),
	})

	after := agent.Coordinator().CurrentState()
	assert.Equal(t, before.TargetWeather, after.TargetWeather)
}
