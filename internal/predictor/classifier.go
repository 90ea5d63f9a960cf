package predictor

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Classifier is a serialized binary logistic-regression model: one weight
// per vectorizer column plus an intercept.
type Classifier struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// loadClassifier reads and validates a serialized classifier against the
// vectorizer it will be paired with.
func loadClassifier(path string, featureCount int) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier: %w", err)
	}

	var c Classifier
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse classifier: %w", err)
	}

	if len(c.Weights) != featureCount {
		return nil, fmt.Errorf("classifier has %d weights, vectorizer produces %d features", len(c.Weights), featureCount)
	}

	return &c, nil
}

// Score computes the raw decision score w·x + b for a sparse feature vector.
func (c *Classifier) Score(features map[int]float64) float64 {
	score := c.Intercept
	for idx, value := range features {
		score += c.Weights[idx] * value
	}
	return score
}

// sigmoid maps a decision score to P(positive).
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
