package predictor

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

// tokenPattern matches words of two or more word characters, the same
// default token boundary the training pipeline uses.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Vectorizer is a serialized TF-IDF vectorizer: a term vocabulary mapped to
// column indexes plus per-column inverse document frequencies.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	Lowercase  bool           `json:"lowercase"`
}

// loadVectorizer reads and validates a serialized vectorizer.
func loadVectorizer(path string) (*Vectorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vectorizer: %w", err)
	}

	var v Vectorizer
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse vectorizer: %w", err)
	}

	if len(v.Vocabulary) == 0 {
		return nil, fmt.Errorf("vectorizer has an empty vocabulary")
	}
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.IDF) {
			return nil, fmt.Errorf("vectorizer term %q maps to column %d, outside idf table of length %d", term, idx, len(v.IDF))
		}
	}

	return &v, nil
}

// Transform converts text into a sparse TF-IDF feature vector keyed by
// column index: term counts weighted by IDF, then L2-normalized.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	if v.Lowercase {
		text = strings.ToLower(text)
	}

	features := make(map[int]float64)
	for _, token := range tokenPattern.FindAllString(text, -1) {
		if idx, ok := v.Vocabulary[token]; ok {
			features[idx]++
		}
	}

	var sumSquares float64
	for idx := range features {
		features[idx] *= v.IDF[idx]
		sumSquares += features[idx] * features[idx]
	}

	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for idx := range features {
			features[idx] /= norm
		}
	}

	return features
}
