package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/lumora-studio/envsim/pkg/mqtt"
	"github.com/lumora-studio/envsim/pkg/redis"
)

// Checker provides health check functionality for the simulation service
type Checker struct {
	mqtt   mqtt.Client
	redis  redis.Client
	logger *slog.Logger
}

// NewChecker creates a new health checker with the given dependencies
func NewChecker(mqttClient mqtt.Client, redisClient redis.Client, logger *slog.Logger) *Checker {
	return &Checker{
		mqtt:   mqttClient,
		redis:  redisClient,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp string    `json:"timestamp"`
	Services  *Services `json:"services,omitempty"`
}

// Services represents the status of external dependencies
type Services struct {
	MQTT  string `json:"mqtt"`
	Redis string `json:"redis"`
}

// HandlerFunc returns an HTTP handler function for health checks.
// Returns 200 if the process is alive; dependency status is informational.
func (h *Checker) HandlerFunc() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		}

		if r.URL.Query().Get("verbose") == "true" {
			response.Services = h.checkServices(r.Context())
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Warn("Failed to encode health response", "error", err)
		}
	}
}

func (h *Checker) checkServices(ctx context.Context) *Services {
	services := &Services{MQTT: "down", Redis: "down"}

	if h.mqtt != nil && h.mqtt.IsConnected() {
		services.MQTT = "up"
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx); err == nil {
			services.Redis = "up"
		}
	}
	return services
}
