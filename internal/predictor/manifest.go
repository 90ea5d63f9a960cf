package predictor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest describes the artifact pair a model directory contains.
// It is written by the training pipeline next to the serialized artifacts.
type Manifest struct {
	Name       string             `yaml:"name"`
	Version    string             `yaml:"version"`
	TrainedAt  time.Time          `yaml:"trained_at"`
	Vectorizer string             `yaml:"vectorizer"` // file name relative to the model dir
	Classifier string             `yaml:"classifier"` // file name relative to the model dir
	Metrics    map[string]float64 `yaml:"metrics,omitempty"`
}

// loadManifest reads and validates manifest.yaml from the model directory.
func loadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to read model manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model manifest: %w", err)
	}

	if m.Vectorizer == "" || m.Classifier == "" {
		return nil, fmt.Errorf("model manifest must name both vectorizer and classifier files")
	}

	return &m, nil
}
