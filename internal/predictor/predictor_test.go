package predictor_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sentimeter/internal/predictor"
	"sentimeter/internal/testutil"
)

func loadFixture(t *testing.T) *predictor.Predictor {
	t.Helper()
	p, err := predictor.Load(testutil.WriteModelDir(t))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return p
}

func TestPredict_Labels(t *testing.T) {
	p := loadFixture(t)

	tests := []struct {
		name      string
		text      string
		wantLabel predictor.Label
	}{
		{name: "positive term", text: "a good movie", wantLabel: predictor.LabelPositive},
		{name: "strong positive term", text: "great acting", wantLabel: predictor.LabelPositive},
		{name: "negative term", text: "a bad movie", wantLabel: predictor.LabelNegative},
		{name: "strong negative term", text: "terrible acting", wantLabel: predictor.LabelNegative},
		{name: "uppercase is folded", text: "GREAT", wantLabel: predictor.LabelPositive},
		{name: "stronger term wins", text: "good but terrible", wantLabel: predictor.LabelNegative},
		{name: "out-of-vocabulary text ties positive", text: "xyzzy quux", wantLabel: predictor.LabelPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.Predict(tt.text)
			if err != nil {
				t.Fatalf("Predict(%q) failed: %v", tt.text, err)
			}
			if result.Label != tt.wantLabel {
				t.Errorf("Predict(%q) label = %q, want %q", tt.text, result.Label, tt.wantLabel)
			}
		})
	}
}

func TestPredict_Invariants(t *testing.T) {
	p := loadFixture(t)

	texts := []string{"good", "bad", "good bad", "great terrible good bad", "nothing known here"}
	for _, text := range texts {
		result, err := p.Predict(text)
		if err != nil {
			t.Fatalf("Predict(%q) failed: %v", text, err)
		}
		if result.Label != predictor.LabelPositive && result.Label != predictor.LabelNegative {
			t.Errorf("Predict(%q) label = %q, want positive or negative", text, result.Label)
		}
		if result.Confidence < 0 || result.Confidence > 1 {
			t.Errorf("Predict(%q) confidence = %v, want in [0,1]", text, result.Confidence)
		}
		if result.Confidence < 0.5 {
			t.Errorf("Predict(%q) confidence = %v, max class probability cannot be below 0.5", text, result.Confidence)
		}
		if sum := result.Positive + result.Negative; sum < 0.999 || sum > 1.001 {
			t.Errorf("Predict(%q) class probabilities sum to %v, want 1", text, sum)
		}
		if result.Latency < 0 {
			t.Errorf("Predict(%q) latency = %v, want >= 0", text, result.Latency)
		}
	}
}

func TestPredict_Deterministic(t *testing.T) {
	p := loadFixture(t)

	first, err := p.Predict("good but terrible")
	if err != nil {
		t.Fatalf("Predict() failed: %v", err)
	}
	second, err := p.Predict("good but terrible")
	if err != nil {
		t.Fatalf("Predict() failed: %v", err)
	}

	if first.Label != second.Label || first.Positive != second.Positive {
		t.Errorf("Predict is not deterministic: %+v vs %+v", first, second)
	}
}

func TestPredict_EmptyText(t *testing.T) {
	p := loadFixture(t)

	for _, text := range []string{"", "   ", "\n\t  "} {
		if _, err := p.Predict(text); !errors.Is(err, predictor.ErrEmptyText) {
			t.Errorf("Predict(%q) error = %v, want ErrEmptyText", text, err)
		}
	}
}

func TestPredict_ModelUnavailable(t *testing.T) {
	p := predictor.Unloaded()

	if p.Ready() {
		t.Error("Unloaded().Ready() = true, want false")
	}
	if _, err := p.Predict("good"); !errors.Is(err, predictor.ErrModelUnavailable) {
		t.Errorf("Predict() error = %v, want ErrModelUnavailable", err)
	}
	// Empty input is still rejected first
	if _, err := p.Predict("  "); !errors.Is(err, predictor.ErrEmptyText) {
		t.Errorf("Predict(blank) error = %v, want ErrEmptyText", err)
	}
}

func TestLoad_Manifest(t *testing.T) {
	p := loadFixture(t)

	m := p.Manifest()
	if m == nil {
		t.Fatal("Manifest() = nil after successful Load")
	}
	if m.Name != "sentiment-lr" || m.Version != "1.0.0" {
		t.Errorf("manifest = %s %s, want sentiment-lr 1.0.0", m.Name, m.Version)
	}
	if m.Metrics["accuracy"] != 0.87 {
		t.Errorf("manifest accuracy = %v, want 0.87", m.Metrics["accuracy"])
	}
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "missing directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
		},
		{
			name: "missing artifact",
			setup: func(t *testing.T) string {
				dir := testutil.WriteModelDir(t)
				os.Remove(filepath.Join(dir, "classifier.json"))
				return dir
			},
		},
		{
			name: "corrupt vectorizer",
			setup: func(t *testing.T) string {
				dir := testutil.WriteModelDir(t)
				os.WriteFile(filepath.Join(dir, "vectorizer.json"), []byte("{not json"), 0o644)
				return dir
			},
		},
		{
			name: "weight count mismatch",
			setup: func(t *testing.T) string {
				dir := testutil.WriteModelDir(t)
				os.WriteFile(filepath.Join(dir, "classifier.json"), []byte(`{"weights":[1.0],"intercept":0}`), 0o644)
				return dir
			},
		},
		{
			name: "vocabulary index out of range",
			setup: func(t *testing.T) string {
				dir := testutil.WriteModelDir(t)
				os.WriteFile(filepath.Join(dir, "vectorizer.json"),
					[]byte(`{"vocabulary":{"good":7},"idf":[1.0],"lowercase":true}`), 0o644)
				return dir
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := predictor.Load(tt.setup(t)); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}
