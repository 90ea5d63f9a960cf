package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"sentimeter/internal/alert"
	"sentimeter/internal/config"
	"sentimeter/internal/handlers/api"
	"sentimeter/internal/metrics"
	"sentimeter/internal/predictor"
	"sentimeter/internal/testutil"
	"sentimeter/internal/tracker"
)

// fakeNotifier counts alert deliveries.
type fakeNotifier struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeNotifier) NotifyMisclassificationStreak(stats tracker.Stats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type testApp struct {
	app      *fiber.App
	recorder *metrics.Recorder
	tracker  *tracker.Tracker
	notifier *fakeNotifier
}

func newTestApp(t *testing.T, pred *predictor.Predictor) *testApp {
	t.Helper()

	cfg := &config.Config{MaxTextLength: 1000}
	rec := metrics.NewRecorder()
	trk := tracker.New(tracker.Config{WindowSize: 10, Threshold: 3, UseProxy: true, LowConfidence: 0.6})
	notifier := &fakeNotifier{}
	disp := alert.New(notifier, time.Hour)

	app := fiber.New()
	app.Post("/api/predict", api.NewPredictHandler(cfg, pred, rec, trk, disp, nil).Predict)
	app.Post("/api/feedback", api.NewFeedbackHandler(rec, trk, disp, nil).Feedback)
	app.Get("/api/health", api.NewHealthHandler(pred, rec).Health)

	return &testApp{app: app, recorder: rec, tracker: trk, notifier: notifier}
}

func loadedPredictor(t *testing.T) *predictor.Predictor {
	t.Helper()
	pred, err := predictor.Load(testutil.WriteModelDir(t))
	if err != nil {
		t.Fatalf("failed to load fixture model: %v", err)
	}
	return pred
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request to %s failed: %v", path, err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, _ := io.ReadAll(resp.Body)
	var envelope map[string]any
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, raw)
	}
	return envelope
}

func TestPredict_Success(t *testing.T) {
	ta := newTestApp(t, loadedPredictor(t))

	resp := postJSON(t, ta.app, "/api/predict", `{"text": "a truly great movie"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	envelope := decodeEnvelope(t, resp)
	if envelope["status"] != "ok" {
		t.Fatalf("envelope status = %v, want ok", envelope["status"])
	}

	data := envelope["data"].(map[string]any)
	if data["label"] != "positive" {
		t.Errorf("label = %v, want positive", data["label"])
	}
	conf := data["confidence"].(float64)
	if conf < 0.5 || conf > 1 {
		t.Errorf("confidence = %v, want in [0.5,1]", conf)
	}
	if data["id"] == "" {
		t.Error("response missing prediction id")
	}
	if _, ok := data["latency_ms"]; !ok {
		t.Error("response missing latency_ms")
	}

	snap := ta.recorder.Snapshot()
	if snap.Requests != 1 || snap.Errors != 0 {
		t.Errorf("metrics = %d requests / %d errors, want 1/0", snap.Requests, snap.Errors)
	}
	if snap.ByLabel["positive"] != 1 {
		t.Errorf("label count = %d, want 1", snap.ByLabel["positive"])
	}
}

func TestPredict_BadInput(t *testing.T) {
	ta := newTestApp(t, loadedPredictor(t))

	tests := []struct {
		name string
		body string
	}{
		{name: "empty text", body: `{"text": ""}`},
		{name: "whitespace text", body: `{"text": "   \n  "}`},
		{name: "missing field", body: `{}`},
		{name: "malformed json", body: `{"text": `},
		{name: "oversized text", body: `{"text": "` + strings.Repeat("x", 2000) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ta.app, "/api/predict", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			envelope := decodeEnvelope(t, resp)
			if envelope["status"] != "error" {
				t.Errorf("envelope status = %v, want error", envelope["status"])
			}
		})
	}
}

func TestPredict_ModelUnavailable(t *testing.T) {
	ta := newTestApp(t, predictor.Unloaded())

	resp := postJSON(t, ta.app, "/api/predict", `{"text": "anything"}`)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}

	snap := ta.recorder.Snapshot()
	if snap.Errors != 1 {
		t.Errorf("error count = %d, want 1", snap.Errors)
	}
}

func TestFeedback_RecordsOutcomes(t *testing.T) {
	ta := newTestApp(t, loadedPredictor(t))

	resp := postJSON(t, ta.app, "/api/feedback", `{"correct": false}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]any)
	if data["recorded"] != true || data["correct"] != false {
		t.Errorf("data = %v, want recorded:true correct:false", data)
	}

	snap := ta.recorder.Snapshot()
	if snap.FeedbackIncorrect != 1 {
		t.Errorf("feedback incorrect = %d, want 1", snap.FeedbackIncorrect)
	}
	if ta.tracker.Stats().Streak != 1 {
		t.Errorf("tracker streak = %d, want 1", ta.tracker.Stats().Streak)
	}
}

func TestFeedback_MissingVerdict(t *testing.T) {
	ta := newTestApp(t, loadedPredictor(t))

	resp := postJSON(t, ta.app, "/api/feedback", `{"prediction_id": "x"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestFeedback_StreakTriggersSingleAlert(t *testing.T) {
	ta := newTestApp(t, loadedPredictor(t))

	// Three consecutive incorrect verdicts cross the threshold once
	for i := 0; i < 3; i++ {
		postJSON(t, ta.app, "/api/feedback", `{"correct": false}`)
	}
	if got := ta.notifier.count(); got != 1 {
		t.Fatalf("alert sends after 3 incorrect = %d, want 1", got)
	}

	// A fourth incorrect belongs to a fresh streak under the same cooldown
	postJSON(t, ta.app, "/api/feedback", `{"correct": false}`)
	if got := ta.notifier.count(); got != 1 {
		t.Errorf("alert sends after 4th incorrect = %d, want still 1", got)
	}
}

func TestFeedback_AlertFailureNeverBreaksServing(t *testing.T) {
	// A notifier that panics stands in for a broken mail transport at the
	// dispatcher boundary; the handler path must still answer 200 because
	// real delivery is asynchronous and contained in the email service.
	ta := newTestApp(t, loadedPredictor(t))

	for i := 0; i < 3; i++ {
		resp := postJSON(t, ta.app, "/api/feedback", `{"correct": false}`)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("feedback %d status = %d, want 200", i+1, resp.StatusCode)
		}
	}
}

func bytesBody(v any) *bytes.Reader {
	raw, _ := json.Marshal(v)
	return bytes.NewReader(raw)
}

func TestPredict_LowConfidenceStreakAlertsViaProxy(t *testing.T) {
	ta := newTestApp(t, loadedPredictor(t))

	// Out-of-vocabulary text scores exactly 0.5 confidence, below the 0.6
	// proxy threshold, so each prediction counts as a candidate incorrect.
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("POST", "/api/predict",
			bytesBody(map[string]string{"text": "zzyzx wombats dancing"}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := ta.app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
	}

	if got := ta.notifier.count(); got != 1 {
		t.Errorf("alert sends after 3 low-confidence predictions = %d, want 1", got)
	}
}
