package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"studentdash/internal/dataset"
)

// Pinger checks a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	store *dataset.Store
	db    Pinger
}

// NewProbeHandler creates a new probe handler. db may be nil when the
// dataset comes from a CSV file.
func NewProbeHandler(store *dataset.Store, db Pinger) *ProbeHandler {
	return &ProbeHandler{store: store, db: db}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK with dataset details once the dataset is loaded and, for
// the postgres source, the database is reachable.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	ds, err := h.store.Get()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  err.Error(),
		})
	}

	result := fiber.Map{
		"status":    "ok",
		"dataset":   ds.ID.String(),
		"source":    ds.Source,
		"rows":      ds.Len(),
		"loaded_at": ds.LoadedAt.Format(time.RFC3339),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			result["status"] = "error"
			result["error"] = "database unavailable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(result)
		}
	}

	return c.JSON(result)
}
