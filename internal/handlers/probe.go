package handlers

import (
	"github.com/gofiber/fiber/v3"

	"sentimeter/internal/predictor"
	"sentimeter/internal/store"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	predictor *predictor.Predictor
	store     *store.Store
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(pred *predictor.Predictor, st *store.Store) *ProbeHandler {
	return &ProbeHandler{predictor: pred, store: st}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if the application can serve traffic: the model is loaded
// and, when the prediction log is configured, the database is reachable.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if !h.predictor.Ready() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "model not loaded",
		})
	}

	if err := h.store.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "database unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
