package predictor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Domain-level prediction error sentinels.
var (
	// ErrEmptyText is returned when the input is empty after trimming.
	ErrEmptyText = errors.New("text must not be empty")

	// ErrModelUnavailable is returned when the model artifacts failed to
	// load at startup. The condition is permanent for the process lifetime.
	ErrModelUnavailable = errors.New("model is not loaded")
)

// Label is the classification output.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
)

// Prediction is the immutable result of a single classification.
type Prediction struct {
	ID         uuid.UUID
	Label      Label
	Confidence float64 // max of the two class probabilities, in [0,1]
	Positive   float64 // P(positive)
	Negative   float64 // P(negative)
	Latency    time.Duration
}

// Predictor wraps the loaded vectorizer + classifier pair. The artifacts
// are read-only after Load, so a Predictor is safe for concurrent use
// without locking.
type Predictor struct {
	manifest   *Manifest
	vectorizer *Vectorizer
	classifier *Classifier
}

// Load reads the model manifest and both artifacts from dir. Classification
// is pure and deterministic once loaded; a load failure is not transient and
// there are no retries.
func Load(dir string) (*Predictor, error) {
	manifest, err := loadManifest(dir)
	if err != nil {
		return nil, err
	}

	vectorizer, err := loadVectorizer(filepath.Join(dir, manifest.Vectorizer))
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", manifest.Name, err)
	}

	classifier, err := loadClassifier(filepath.Join(dir, manifest.Classifier), len(vectorizer.IDF))
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", manifest.Name, err)
	}

	return &Predictor{
		manifest:   manifest,
		vectorizer: vectorizer,
		classifier: classifier,
	}, nil
}

// Unloaded returns a predictor with no model. Every Predict call fails with
// ErrModelUnavailable; readiness probes report the same condition.
func Unloaded() *Predictor {
	return &Predictor{}
}

// Ready returns true if the model artifacts are loaded.
func (p *Predictor) Ready() bool {
	return p.vectorizer != nil && p.classifier != nil
}

// Manifest returns the loaded model manifest, or nil when unloaded.
func (p *Predictor) Manifest() *Manifest {
	return p.manifest
}

// Predict classifies text as positive or negative sentiment.
func (p *Predictor) Predict(text string) (*Prediction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	if !p.Ready() {
		return nil, ErrModelUnavailable
	}

	start := time.Now()

	features := p.vectorizer.Transform(text)
	positive := sigmoid(p.classifier.Score(features))
	negative := 1 - positive

	label := LabelNegative
	if positive >= 0.5 {
		label = LabelPositive
	}

	return &Prediction{
		ID:         uuid.New(),
		Label:      label,
		Confidence: max(positive, negative),
		Positive:   positive,
		Negative:   negative,
		Latency:    time.Since(start),
	}, nil
}
