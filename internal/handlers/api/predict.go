package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"sentimeter/internal/alert"
	"sentimeter/internal/config"
	"sentimeter/internal/metrics"
	"sentimeter/internal/models"
	"sentimeter/internal/predictor"
	"sentimeter/internal/store"
	"sentimeter/internal/tracker"
	"sentimeter/internal/validation"
)

// PredictHandler handles sentiment classification via JSON API.
type PredictHandler struct {
	cfg        *config.Config
	predictor  *predictor.Predictor
	recorder   *metrics.Recorder
	tracker    *tracker.Tracker
	dispatcher *alert.Dispatcher
	store      *store.Store
}

// NewPredictHandler creates a new API predict handler.
func NewPredictHandler(cfg *config.Config, pred *predictor.Predictor, rec *metrics.Recorder,
	trk *tracker.Tracker, disp *alert.Dispatcher, st *store.Store) *PredictHandler {
	return &PredictHandler{
		cfg:        cfg,
		predictor:  pred,
		recorder:   rec,
		tracker:    trk,
		dispatcher: disp,
		store:      st,
	}
}

// Predict classifies the posted text and returns the label with both class
// scores.
func (h *PredictHandler) Predict(c fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Text = validation.NormalizeText(body.Text)
	if valid, msg := validation.ValidateText(body.Text, h.cfg.MaxTextLength); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	p, err := h.classify(body.Text)
	if err != nil {
		switch {
		case errors.Is(err, predictor.ErrEmptyText):
			return jsonError(c, fiber.StatusBadRequest, "text must not be empty")
		case errors.Is(err, predictor.ErrModelUnavailable):
			return jsonError(c, fiber.StatusServiceUnavailable, "model is not loaded")
		default:
			return jsonError(c, fiber.StatusInternalServerError, "prediction failed")
		}
	}

	return jsonSuccess(c, models.PredictionAPIResponse{
		ID:         p.ID,
		Label:      string(p.Label),
		Confidence: p.Confidence,
		Positive:   p.Positive,
		Negative:   p.Negative,
		LatencyMS:  float64(p.Latency) / float64(time.Millisecond),
	})
}

// classify runs the full serving pipeline: model call, metrics, outcome
// tracking with the confidence proxy, alert dispatch, and the async
// prediction log.
func (h *PredictHandler) classify(text string) (*predictor.Prediction, error) {
	p, err := h.predictor.Predict(text)
	if err != nil {
		h.recorder.Record(0, false)
		return nil, err
	}

	h.recorder.Record(p.Latency, true)
	h.recorder.RecordLabel(string(p.Label))

	decision := h.tracker.RecordProxy(p.Confidence)
	h.dispatcher.MaybeAlert(decision, h.tracker.Stats())

	h.store.RecordPredictionAsync(&models.PredictionRecord{
		ID:         p.ID,
		Text:       text,
		Label:      string(p.Label),
		Confidence: p.Confidence,
		Positive:   p.Positive,
		Negative:   p.Negative,
		LatencyMS:  float64(p.Latency) / float64(time.Millisecond),
	})

	return p, nil
}
