package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sentimeter/internal/models"
)

// RecordPrediction inserts one prediction into the log.
func (s *Store) RecordPrediction(ctx context.Context, rec *models.PredictionRecord) error {
	if s == nil {
		return nil
	}

	query := `
		INSERT INTO predictions (id, input_text, label, confidence, positive, negative, latency_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.Pool.Exec(ctx, query,
		rec.ID, rec.Text, rec.Label, rec.Confidence, rec.Positive, rec.Negative, rec.LatencyMS)
	if err != nil {
		return fmt.Errorf("failed to record prediction: %w", err)
	}

	return nil
}

// RecordPredictionAsync logs a prediction off the request path. Storage
// hiccups never fail serving; they are logged and the record is lost.
func (s *Store) RecordPredictionAsync(rec *models.PredictionRecord) {
	if s == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.RecordPrediction(ctx, rec); err != nil {
			slog.Error("failed to log prediction", "prediction_id", rec.ID, "error", err)
		}
	}()
}

// SetFeedback annotates a logged prediction with a user feedback verdict.
func (s *Store) SetFeedback(ctx context.Context, id uuid.UUID, correct bool) error {
	if s == nil {
		return nil
	}

	verdict := models.FeedbackIncorrect
	if correct {
		verdict = models.FeedbackCorrect
	}

	query := `
		UPDATE predictions
		SET feedback = $2, feedback_at = now()
		WHERE id = $1
	`

	tag, err := s.Pool.Exec(ctx, query, id, verdict)
	if err != nil {
		return fmt.Errorf("failed to set feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPredictionNotFound
	}

	return nil
}

// RecentPredictions returns the newest logged predictions, up to limit.
func (s *Store) RecentPredictions(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	if s == nil {
		return nil, nil
	}

	query := `
		SELECT id, input_text, label, confidence, positive, negative, latency_ms, feedback, feedback_at, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var records []models.PredictionRecord
	for rows.Next() {
		var rec models.PredictionRecord
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.Label, &rec.Confidence, &rec.Positive,
			&rec.Negative, &rec.LatencyMS, &rec.Feedback, &rec.FeedbackAt, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
