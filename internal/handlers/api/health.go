package api

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"sentimeter/internal/metrics"
	"sentimeter/internal/models"
	"sentimeter/internal/predictor"
)

// HealthHandler reports service health with a metrics snapshot.
type HealthHandler struct {
	predictor *predictor.Predictor
	recorder  *metrics.Recorder
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(pred *predictor.Predictor, rec *metrics.Recorder) *HealthHandler {
	return &HealthHandler{predictor: pred, recorder: rec}
}

// Health returns readiness plus aggregate serving metrics. Responds 503
// with status "degraded" while the model is not loaded.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	snap := h.recorder.Snapshot()

	resp := models.HealthAPIResponse{
		Status: "ok",
		Model: models.ModelInfoAPIResponse{
			Loaded: h.predictor.Ready(),
		},
		UptimeSeconds: time.Since(snap.StartedAt).Seconds(),
		Metrics: models.MetricsAPIResponse{
			Requests:     snap.Requests,
			Errors:       snap.Errors,
			ErrorRate:    snap.ErrorRate(),
			AvgLatencyMS: float64(snap.AvgLatency()) / float64(time.Millisecond),
		},
	}

	if m := h.predictor.Manifest(); m != nil {
		resp.Model.Name = m.Name
		resp.Model.Version = m.Version
	}

	if !h.predictor.Ready() {
		resp.Status = "degraded"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}

	return c.JSON(resp)
}
