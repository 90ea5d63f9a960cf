package models

import "github.com/google/uuid"

// PredictionAPIResponse is the JSON payload returned by POST /api/predict.
type PredictionAPIResponse struct {
	ID         uuid.UUID `json:"id"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	Positive   float64   `json:"positive"`
	Negative   float64   `json:"negative"`
	LatencyMS  float64   `json:"latency_ms"`
}

// ModelInfoAPIResponse describes the loaded model in health responses.
type ModelInfoAPIResponse struct {
	Loaded  bool   `json:"loaded"`
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// MetricsAPIResponse is the aggregate metrics block in health responses.
type MetricsAPIResponse struct {
	Requests     uint64  `json:"requests"`
	Errors       uint64  `json:"errors"`
	ErrorRate    float64 `json:"error_rate"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
}

// HealthAPIResponse is the JSON payload returned by GET /api/health.
type HealthAPIResponse struct {
	Status        string               `json:"status"`
	Model         ModelInfoAPIResponse `json:"model"`
	UptimeSeconds float64              `json:"uptime_seconds"`
	Metrics       MetricsAPIResponse   `json:"metrics"`
}
