package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

// Config holds the configuration for an envsim service
type Config struct {
	// MQTT configuration
	MQTTBroker   string
	MQTTPort     int
	MQTTUser     string
	MQTTPassword string
	MQTTClientID string

	// Redis configuration
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	// Postgres configuration (snapshot history archive)
	PostgresHost            string
	PostgresPort            int
	PostgresUser            string
	PostgresPassword        string
	PostgresDB              string
	PostgresSSLMode         string
	PostgresMaxConnections  int
	PostgresMaxIdleConns    int
	PostgresConnMaxLifetime time.Duration

	// Service configuration
	ServiceName string
	HealthPort  int
	LogLevel    string

	// Simulation configuration
	Latitude         float64
	SecondsPerDay    float64
	TimeScale        float64
	MinTimeScale     float64
	MaxTimeScale     float64
	StartTimeOfDay   float64
	SeasonLengthDays int

	// Weather configuration
	WeatherTransitionSec    float64
	WeatherTableFile        string
	AutoWeatherEnabled      bool
	AutoWeatherIntervalSec  float64
	AutoWeatherMinIntensity float64
	AutoWeatherMaxIntensity float64
	RandomSeed              int64

	// Agent configuration
	TickIntervalMs      int
	SnapshotIntervalSec int
	HistoryEnabled      bool
	WallClockSync       bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		MQTTBroker:   "localhost",
		MQTTPort:     1883,
		MQTTUser:     "",
		MQTTPassword: "",
		MQTTClientID: "",

		RedisHost:     "localhost",
		RedisPort:     6379,
		RedisPassword: "",
		RedisDB:       0,

		PostgresHost:            "localhost",
		PostgresPort:            5432,
		PostgresUser:            "envsim",
		PostgresPassword:        "",
		PostgresDB:              "envsim",
		PostgresSSLMode:         "disable",
		PostgresMaxConnections:  10,
		PostgresMaxIdleConns:    5,
		PostgresConnMaxLifetime: 30 * time.Minute,

		ServiceName: "envsim-agent",
		HealthPort:  8080,
		LogLevel:    "info",

		// Simulation defaults (Helsinki latitude, one real hour per simulated day)
		Latitude:         60.1695,
		SecondsPerDay:    3600,
		TimeScale:        1.0,
		MinTimeScale:     0.01,
		MaxTimeScale:     10000,
		StartTimeOfDay:   0.5,
		SeasonLengthDays: 30,

		WeatherTransitionSec:    10,
		WeatherTableFile:        "",
		AutoWeatherEnabled:      false,
		AutoWeatherIntervalSec:  600,
		AutoWeatherMinIntensity: 0.3,
		AutoWeatherMaxIntensity: 1.0,
		RandomSeed:              0,

		TickIntervalMs:      100,
		SnapshotIntervalSec: 30,
		HistoryEnabled:      false,
		WallClockSync:       false,
	}
}

// LoadFromEnv loads configuration from environment variables with ENVSIM_ prefix
func (c *Config) LoadFromEnv() {
	// MQTT configuration
	if v := os.Getenv("ENVSIM_MQTT_BROKER"); v != "" {
		c.MQTTBroker = v
	}
	if v := os.Getenv("ENVSIM_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.MQTTPort = port
		}
	}
	if v := os.Getenv("ENVSIM_MQTT_USER"); v != "" {
		c.MQTTUser = v
	}
	if v := os.Getenv("ENVSIM_MQTT_PASSWORD"); v != "" {
		c.MQTTPassword = v
	}
	if v := os.Getenv("ENVSIM_MQTT_CLIENT_ID"); v != "" {
		c.MQTTClientID = v
	}

	// Redis configuration
	if v := os.Getenv("ENVSIM_REDIS_HOST"); v != "" {
		c.RedisHost = v
	}
	if v := os.Getenv("ENVSIM_REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.RedisPort = port
		}
	}
	if v := os.Getenv("ENVSIM_REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("ENVSIM_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.RedisDB = db
		}
	}

	// Postgres configuration
	if v := os.Getenv("ENVSIM_POSTGRES_HOST"); v != "" {
		c.PostgresHost = v
	}
	if v := os.Getenv("ENVSIM_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.PostgresPort = port
		}
	}
	if v := os.Getenv("ENVSIM_POSTGRES_USER"); v != "" {
		c.PostgresUser = v
	}
	if v := os.Getenv("ENVSIM_POSTGRES_PASSWORD"); v != "" {
		c.PostgresPassword = v
	}
	if v := os.Getenv("ENVSIM_POSTGRES_DB"); v != "" {
		c.PostgresDB = v
	}
	if v := os.Getenv("ENVSIM_POSTGRES_SSL_MODE"); v != "" {
		c.PostgresSSLMode = v
	}

	// Service configuration
	if v := os.Getenv("ENVSIM_SERVICE_NAME"); v != "" {
		c.ServiceName = v
	}
	if v := os.Getenv("ENVSIM_HEALTH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.HealthPort = port
		}
	}
	if v := os.Getenv("ENVSIM_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	// Simulation configuration
	if v := os.Getenv("ENVSIM_LATITUDE"); v != "" {
		if lat, err := strconv.ParseFloat(v, 64); err == nil {
			c.Latitude = lat
		}
	}
	if v := os.Getenv("ENVSIM_SECONDS_PER_DAY"); v != "" {
		if spd, err := strconv.ParseFloat(v, 64); err == nil {
			c.SecondsPerDay = spd
		}
	}
	if v := os.Getenv("ENVSIM_TIME_SCALE"); v != "" {
		if scale, err := strconv.ParseFloat(v, 64); err == nil {
			c.TimeScale = scale
		}
	}
	if v := os.Getenv("ENVSIM_START_TIME_OF_DAY"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			c.StartTimeOfDay = t
		}
	}
	if v := os.Getenv("ENVSIM_SEASON_LENGTH_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			c.SeasonLengthDays = days
		}
	}

	// Weather configuration
	if v := os.Getenv("ENVSIM_WEATHER_TRANSITION_SEC"); v != "" {
		if sec, err := strconv.ParseFloat(v, 64); err == nil {
			c.WeatherTransitionSec = sec
		}
	}
	if v := os.Getenv("ENVSIM_WEATHER_TABLE_FILE"); v != "" {
		c.WeatherTableFile = v
	}
	if v := os.Getenv("ENVSIM_AUTO_WEATHER_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.AutoWeatherEnabled = enabled
		}
	}
	if v := os.Getenv("ENVSIM_AUTO_WEATHER_INTERVAL_SEC"); v != "" {
		if sec, err := strconv.ParseFloat(v, 64); err == nil {
			c.AutoWeatherIntervalSec = sec
		}
	}
	if v := os.Getenv("ENVSIM_RANDOM_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.RandomSeed = seed
		}
	}

	// Agent configuration
	if v := os.Getenv("ENVSIM_TICK_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.TickIntervalMs = ms
		}
	}
	if v := os.Getenv("ENVSIM_SNAPSHOT_INTERVAL_SEC"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			c.SnapshotIntervalSec = sec
		}
	}
	if v := os.Getenv("ENVSIM_HISTORY_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.HistoryEnabled = enabled
		}
	}
	if v := os.Getenv("ENVSIM_WALL_CLOCK_SYNC"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.WallClockSync = enabled
		}
	}
}

// LoadFromFlags parses command-line flags and overrides config values
func (c *Config) LoadFromFlags() {
	// MQTT flags
	pflag.StringVar(&c.MQTTBroker, "mqtt-broker", c.MQTTBroker, "MQTT broker hostname")
	pflag.IntVar(&c.MQTTPort, "mqtt-port", c.MQTTPort, "MQTT broker port")
	pflag.StringVar(&c.MQTTUser, "mqtt-user", c.MQTTUser, "MQTT username")
	pflag.StringVar(&c.MQTTPassword, "mqtt-password", c.MQTTPassword, "MQTT password")
	pflag.StringVar(&c.MQTTClientID, "mqtt-client-id", c.MQTTClientID, "MQTT client ID")

	// Redis flags
	pflag.StringVar(&c.RedisHost, "redis-host", c.RedisHost, "Redis hostname")
	pflag.IntVar(&c.RedisPort, "redis-port", c.RedisPort, "Redis port")
	pflag.StringVar(&c.RedisPassword, "redis-password", c.RedisPassword, "Redis password")
	pflag.IntVar(&c.RedisDB, "redis-db", c.RedisDB, "Redis database number")

	// Postgres flags
	pflag.StringVar(&c.PostgresHost, "postgres-host", c.PostgresHost, "Postgres hostname")
	pflag.IntVar(&c.PostgresPort, "postgres-port", c.PostgresPort, "Postgres port")
	pflag.StringVar(&c.PostgresUser, "postgres-user", c.PostgresUser, "Postgres username")
	pflag.StringVar(&c.PostgresPassword, "postgres-password", c.PostgresPassword, "Postgres password")
	pflag.StringVar(&c.PostgresDB, "postgres-db", c.PostgresDB, "Postgres database name")
	pflag.StringVar(&c.PostgresSSLMode, "postgres-ssl-mode", c.PostgresSSLMode, "Postgres SSL mode")

	// Service flags
	pflag.StringVar(&c.ServiceName, "service-name", c.ServiceName, "Service name")
	pflag.IntVar(&c.HealthPort, "health-port", c.HealthPort, "Health check HTTP port")
	pflag.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")

	// Simulation flags
	pflag.Float64Var(&c.Latitude, "latitude", c.Latitude, "Geographic latitude for celestial calculation")
	pflag.Float64Var(&c.SecondsPerDay, "seconds-per-day", c.SecondsPerDay, "Real seconds per simulated day at scale 1.0")
	pflag.Float64Var(&c.TimeScale, "time-scale", c.TimeScale, "Simulation time scale multiplier")
	pflag.Float64Var(&c.StartTimeOfDay, "start-time-of-day", c.StartTimeOfDay, "Initial normalized time of day [0,1)")
	pflag.IntVar(&c.SeasonLengthDays, "season-length-days", c.SeasonLengthDays, "Season length in simulated days (<=0 disables auto-progression)")

	// Weather flags
	pflag.Float64Var(&c.WeatherTransitionSec, "weather-transition", c.WeatherTransitionSec, "Weather transition duration in simulated seconds")
	pflag.StringVar(&c.WeatherTableFile, "weather-table-file", c.WeatherTableFile, "YAML weather modifier table file (empty = built-in defaults)")
	pflag.BoolVar(&c.AutoWeatherEnabled, "auto-weather", c.AutoWeatherEnabled, "Enable scheduled random weather changes")
	pflag.Float64Var(&c.AutoWeatherIntervalSec, "auto-weather-interval", c.AutoWeatherIntervalSec, "Interval between random weather changes in simulated seconds")
	pflag.Int64Var(&c.RandomSeed, "random-seed", c.RandomSeed, "Random seed for weather selection (0 = time-based)")

	// Agent flags
	pflag.IntVar(&c.TickIntervalMs, "tick-interval-ms", c.TickIntervalMs, "Simulation tick interval in milliseconds")
	pflag.IntVar(&c.SnapshotIntervalSec, "snapshot-interval", c.SnapshotIntervalSec, "Interval between Redis snapshots in seconds")
	pflag.BoolVar(&c.HistoryEnabled, "history-enabled", c.HistoryEnabled, "Enable Postgres snapshot history archive")
	pflag.BoolVar(&c.WallClockSync, "wall-clock-sync", c.WallClockSync, "Sync initial time of day and day of year to the host clock")

	pflag.Parse()
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT broker is required")
	}
	if c.MQTTPort <= 0 || c.MQTTPort > 65535 {
		return fmt.Errorf("MQTT port must be between 1 and 65535")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("Redis host is required")
	}
	if c.RedisPort <= 0 || c.RedisPort > 65535 {
		return fmt.Errorf("Redis port must be between 1 and 65535")
	}
	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("Health port must be between 1 and 65535")
	}
	if c.ServiceName == "" {
		return fmt.Errorf("Service name is required")
	}

	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if c.SecondsPerDay <= 0 {
		return fmt.Errorf("seconds per day must be positive")
	}
	if c.MinTimeScale <= 0 || c.MaxTimeScale < c.MinTimeScale {
		return fmt.Errorf("time scale clamp range is invalid")
	}
	if c.AutoWeatherMinIntensity < 0 || c.AutoWeatherMaxIntensity > 1 ||
		c.AutoWeatherMinIntensity > c.AutoWeatherMaxIntensity {
		return fmt.Errorf("auto weather intensity band must satisfy 0 <= min <= max <= 1")
	}
	if c.TickIntervalMs <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// MQTTAddress returns the full MQTT broker address
func (c *Config) MQTTAddress() string {
	return fmt.Sprintf("tcp://%s:%d", c.MQTTBroker, c.MQTTPort)
}

// RedisAddress returns the full Redis address
func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// PostgresConnectionString returns a lib/pq connection string
func (c *Config) PostgresConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode)
}
