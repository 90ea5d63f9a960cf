package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sentimeter/internal/alert"
	"sentimeter/internal/handlers"
	"sentimeter/internal/handlers/api"
	"sentimeter/internal/metrics"
	"sentimeter/internal/predictor"
	"sentimeter/internal/store"
	"sentimeter/internal/tracker"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(pred *predictor.Predictor, rec *metrics.Recorder,
	trk *tracker.Tracker, disp *alert.Dispatcher, st *store.Store) {

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(s.Cfg, pred, rec, trk, disp, st)
	probeHandler := handlers.NewProbeHandler(pred, st)
	predictHandler := api.NewPredictHandler(s.Cfg, pred, rec, trk, disp, st)
	feedbackHandler := api.NewFeedbackHandler(rec, trk, disp, st)
	healthHandler := api.NewHealthHandler(pred, rec)

	// Probes and Prometheus exposition
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Post("/predict", predictHandler.Predict)
	apiGroup.Post("/feedback", feedbackHandler.Feedback)
	apiGroup.Get("/health", healthHandler.Health)

	// Frontend routes
	s.App.Get("/", pageHandler.Index)
	s.App.Post("/", pageHandler.Classify)
	s.App.Post("/feedback", pageHandler.Feedback)
	s.App.Get("/history", pageHandler.History)
}
