package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback verdict values stored on a prediction record.
const (
	FeedbackCorrect   = "correct"
	FeedbackIncorrect = "incorrect"
)

// PredictionRecord is one logged prediction, optionally annotated with a
// user feedback verdict.
type PredictionRecord struct {
	ID         uuid.UUID  `json:"id"`
	Text       string     `json:"text"`
	Label      string     `json:"label"`
	Confidence float64    `json:"confidence"`
	Positive   float64    `json:"positive"`
	Negative   float64    `json:"negative"`
	LatencyMS  float64    `json:"latency_ms"`
	Feedback   *string    `json:"feedback,omitempty"`
	FeedbackAt *time.Time `json:"feedback_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
