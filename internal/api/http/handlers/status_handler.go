package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-bot/internal/api/dto"
	"github.com/spec-kit/ticket-bot/internal/repository"
)

// StatusHandler reports the current counter values and uptime.
type StatusHandler struct {
	serviceName string
	version     string
	counters    repository.CounterRepository
	startedAt   time.Time
}

// NewStatusHandler constructs the handler.
func NewStatusHandler(serviceName, version string, counters repository.CounterRepository) *StatusHandler {
	return &StatusHandler{
		serviceName: serviceName,
		version:     version,
		counters:    counters,
		startedAt:   time.Now(),
	}
}

// Status GET /status.
func (h *StatusHandler) Status(c *fiber.Ctx) error {
	snapshot, err := h.counters.Snapshot(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "COUNTER_UNAVAILABLE",
				"message": "failed to read counters",
			},
		})
	}

	counters := make(map[string]int, len(snapshot))
	for t, value := range snapshot {
		counters[string(t)] = value
	}

	return c.JSON(fiber.Map{"data": dto.StatusResponse{
		Service:       h.serviceName,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Counters:      counters,
	}})
}
