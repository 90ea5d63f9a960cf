package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"sentimeter/internal/alert"
	"sentimeter/internal/config"
	"sentimeter/internal/metrics"
	"sentimeter/internal/models"
	"sentimeter/internal/predictor"
	"sentimeter/internal/store"
	"sentimeter/internal/tracker"
	"sentimeter/internal/validation"
)

// PageHandler serves the HTML front-end.
type PageHandler struct {
	cfg        *config.Config
	predictor  *predictor.Predictor
	recorder   *metrics.Recorder
	tracker    *tracker.Tracker
	dispatcher *alert.Dispatcher
	store      *store.Store
}

// NewPageHandler creates a new page handler.
func NewPageHandler(cfg *config.Config, pred *predictor.Predictor, rec *metrics.Recorder,
	trk *tracker.Tracker, disp *alert.Dispatcher, st *store.Store) *PageHandler {
	return &PageHandler{
		cfg:        cfg,
		predictor:  pred,
		recorder:   rec,
		tracker:    trk,
		dispatcher: disp,
		store:      st,
	}
}

// branding returns the common template variables every page needs.
func (h *PageHandler) branding() fiber.Map {
	return fiber.Map{
		"SiteTitle":   h.cfg.SiteTitle,
		"SiteTagline": h.cfg.SiteTagline,
		"SiteFooter":  h.cfg.SiteFooter,
		"ModelReady":  h.predictor.Ready(),
	}
}

// Index renders the classification form.
func (h *PageHandler) Index(c fiber.Ctx) error {
	data := h.branding()
	data["Title"] = "Home"
	return c.Render("index", data)
}

// Classify handles the form submission and re-renders the page with the
// result and feedback buttons.
func (h *PageHandler) Classify(c fiber.Ctx) error {
	text := validation.NormalizeText(c.FormValue("text"))

	data := h.branding()
	data["Title"] = "Home"
	data["Text"] = text

	if valid, msg := validation.ValidateText(text, h.cfg.MaxTextLength); !valid {
		data["Error"] = msg
		return c.Status(fiber.StatusBadRequest).Render("index", data)
	}

	p, err := h.classify(text)
	if err != nil {
		switch {
		case errors.Is(err, predictor.ErrEmptyText):
			data["Error"] = "Text is required"
			return c.Status(fiber.StatusBadRequest).Render("index", data)
		case errors.Is(err, predictor.ErrModelUnavailable):
			data["Error"] = "The model is not loaded; predictions are unavailable"
			return c.Status(fiber.StatusServiceUnavailable).Render("index", data)
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "prediction failed")
		}
	}

	data["Result"] = fiber.Map{
		"ID":             p.ID.String(),
		"Label":          string(p.Label),
		"IsPositive":     p.Label == predictor.LabelPositive,
		"ConfidencePct":  p.Confidence * 100,
		"PositivePct":    p.Positive * 100,
		"NegativePct":    p.Negative * 100,
		"LatencyMS":      float64(p.Latency) / float64(time.Millisecond),
		"FeedbackStored": h.store.Enabled(),
	}
	return c.Render("index", data)
}

// Feedback handles the thumbs-up/down form post and returns to the form.
func (h *PageHandler) Feedback(c fiber.Ctx) error {
	correct := c.FormValue("verdict") == models.FeedbackCorrect

	if rawID := c.FormValue("prediction_id"); rawID != "" && h.store.Enabled() {
		id, err := uuid.Parse(rawID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid prediction id")
		}
		if err := h.store.SetFeedback(c.Context(), id, correct); err != nil &&
			!errors.Is(err, store.ErrPredictionNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to record feedback")
		}
	}

	h.recorder.RecordFeedback(correct)

	decision := h.tracker.Record(correct)
	h.dispatcher.MaybeAlert(decision, h.tracker.Stats())

	return c.Redirect().To("/")
}

// History renders the recent prediction log.
func (h *PageHandler) History(c fiber.Ctx) error {
	data := h.branding()
	data["Title"] = "History"
	data["StoreEnabled"] = h.store.Enabled()

	if h.store.Enabled() {
		records, err := h.store.RecentPredictions(c.Context(), 50)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch prediction history")
		}
		data["Records"] = records
	}

	return c.Render("history", data)
}

// classify runs the same serving pipeline as the JSON API: model call,
// metrics, outcome tracking with the confidence proxy, alert dispatch, and
// the async prediction log.
func (h *PageHandler) classify(text string) (*predictor.Prediction, error) {
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
