package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"sentimeter/internal/alert"
	"sentimeter/internal/metrics"
	"sentimeter/internal/store"
	"sentimeter/internal/tracker"
)

// FeedbackHandler records user-supplied ground truth for past predictions.
type FeedbackHandler struct {
	recorder   *metrics.Recorder
	tracker    *tracker.Tracker
	dispatcher *alert.Dispatcher
	store      *store.Store
}

// NewFeedbackHandler creates a new API feedback handler.
func NewFeedbackHandler(rec *metrics.Recorder, trk *tracker.Tracker,
	disp *alert.Dispatcher, st *store.Store) *FeedbackHandler {
	return &FeedbackHandler{
		recorder:   rec,
		tracker:    trk,
		dispatcher: disp,
		store:      st,
	}
}

// Feedback records a correctness verdict as a ground-truth outcome. The
// prediction_id is optional and only annotates the prediction log when the
// log is enabled.
func (h *FeedbackHandler) Feedback(c fiber.Ctx) error {
	var body struct {
		PredictionID string `json:"prediction_id"`
		Correct      *bool  `json:"correct"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Correct == nil {
		return jsonError(c, fiber.StatusBadRequest, "correct is required")
	}

	if body.PredictionID != "" && h.store.Enabled() {
		id, err := uuid.Parse(body.PredictionID)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid prediction id")
		}

		if err := h.store.SetFeedback(c.Context(), id, *body.Correct); err != nil {
			if errors.Is(err, store.ErrPredictionNotFound) {
				return jsonError(c, fiber.StatusNotFound, "prediction not found")
			}
			return jsonError(c, fiber.StatusInternalServerError, "failed to record feedback")
		}
	}

	h.recorder.RecordFeedback(*body.Correct)

	decision := h.tracker.Record(*body.Correct)
	h.dispatcher.MaybeAlert(decision, h.tracker.Stats())

	return jsonSuccess(c, fiber.Map{
		"recorded": true,
		"correct":  *body.Correct,
	})
}
