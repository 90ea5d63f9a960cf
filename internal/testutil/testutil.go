// Package testutil provides shared test fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Fixture artifact contents. The vocabulary and weights are chosen so test
// inputs have obvious expected labels: "good"/"great" pull positive,
// "bad"/"terrible" pull negative.
const (
	fixtureManifest = `name: sentiment-lr
version: "1.0.0"
trained_at: 2026-01-15T00:00:00Z
vectorizer: vectorizer.json
classifier: classifier.json
metrics:
  accuracy: 0.87
`
	fixtureVectorizer = `{
  "vocabulary": {"good": 0, "great": 1, "bad": 2, "terrible": 3},
  "idf": [1.0, 1.0, 1.0, 1.0],
  "lowercase": true
}`
	fixtureClassifier = `{
  "weights": [2.0, 3.0, -2.0, -3.0],
  "intercept": 0.0
}`
)

// WriteModelDir writes a complete, valid model directory (manifest +
// vectorizer + classifier) into a temp dir and returns its path.
func WriteModelDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"manifest.yaml":   fixtureManifest,
		"vectorizer.json": fixtureVectorizer,
		"classifier.json": fixtureClassifier,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	return dir
}
