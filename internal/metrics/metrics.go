package metrics

import (
	"sync"
	"time"
)

// Snapshot is a consistent view of the recorder state. All values are
// monotonically accumulating for the process lifetime and reset only on
// restart.
type Snapshot struct {
	Requests   uint64
	Errors     uint64
	LatencySum time.Duration
	LatencyMin time.Duration
	LatencyMax time.Duration

	ByLabel           map[string]uint64
	FeedbackCorrect   uint64
	FeedbackIncorrect uint64

	StartedAt time.Time
}

// AvgLatency returns the mean request latency, or 0 with no requests.
func (s Snapshot) AvgLatency() time.Duration {
	if s.Requests == 0 {
		return 0
	}
	return s.LatencySum / time.Duration(s.Requests)
}

// ErrorRate returns the fraction of requests that failed, in [0,1].
func (s Snapshot) ErrorRate() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Requests)
}

// Recorder accumulates per-request latency and outcome counts in process
// memory under a single mutex. Safe for concurrent use; Snapshot never
// returns negative or count-inconsistent values.
type Recorder struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		snap: Snapshot{
			ByLabel:   make(map[string]uint64),
			StartedAt: time.Now(),
		},
	}
}

// Record accumulates one request's latency and outcome.
func (r *Recorder) Record(latency time.Duration, success bool) {
	if latency < 0 {
		latency = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.snap.Requests++
	if !success {
		r.snap.Errors++
	}
	r.snap.LatencySum += latency
	if r.snap.Requests == 1 || latency < r.snap.LatencyMin {
		r.snap.LatencyMin = latency
	}
	if latency > r.snap.LatencyMax {
		r.snap.LatencyMax = latency
	}
}

// RecordLabel counts a successful prediction by its label.
func (r *Recorder) RecordLabel(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.ByLabel[label]++
}

// RecordFeedback counts a user feedback verdict.
func (r *Recorder) RecordFeedback(correct bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if correct {
		r.snap.FeedbackCorrect++
	} else {
		r.snap.FeedbackIncorrect++
	}
}

// Snapshot returns a copy of the accumulated state.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.snap
	snap.ByLabel = make(map[string]uint64, len(r.snap.ByLabel))
	for label, count := range r.snap.ByLabel {
		snap.ByLabel[label] = count
	}
	return snap
}
