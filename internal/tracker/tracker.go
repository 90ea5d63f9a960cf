package tracker

import (
	"sync"
)

// Decision is the tracker's verdict after recording an outcome.
type Decision int

const (
	NoAlert Decision = iota
	ShouldAlert
)

// Config controls the tracking and alerting policy.
type Config struct {
	// WindowSize is the rolling outcome window capacity.
	WindowSize int

	// Threshold is the consecutive-incorrect streak that triggers an alert.
	Threshold int

	// UseProxy enables the confidence proxy: with no ground truth at
	// prediction time, confidence below LowConfidence counts as a candidate
	// incorrect outcome. An approximation, not a measurement.
	UseProxy      bool
	LowConfidence float64
}

// Stats is a point-in-time view of the tracker state.
type Stats struct {
	WindowLen         int
	WindowCap         int
	IncorrectInWindow int
	Streak            int
	Threshold         int
	TotalRecorded     uint64
}

// Tracker maintains a bounded rolling window of recent outcome judgments
// and the current consecutive-incorrect streak. Safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	window []bool // true = correct; oldest first
	streak int
	total  uint64
	cfg    Config
}

// New creates a tracker, applying defaults for zero-valued config fields.
func New(cfg Config) *Tracker {
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = 100
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = 3
	}
	if cfg.LowConfidence <= 0 {
		cfg.LowConfidence = 0.6
	}
	return &Tracker{
		window: make([]bool, 0, cfg.WindowSize),
		cfg:    cfg,
	}
}

// Record appends an outcome to the window, evicting the oldest entry at
// capacity, and updates the streak. It returns ShouldAlert when the streak
// reaches the threshold; the streak is then reset so one breach yields
// exactly one alert decision.
func (t *Tracker) Record(correct bool) Decision {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.window = append(t.window, correct)
	if len(t.window) > t.cfg.WindowSize {
		t.window = t.window[1:]
	}
	t.total++

	if correct {
		t.streak = 0
		return NoAlert
	}

	t.streak++
	if t.streak >= t.cfg.Threshold {
		t.streak = 0
		return ShouldAlert
	}
	return NoAlert
}

// RecordProxy records an outcome judged by the confidence proxy. It is a
// no-op when the proxy is disabled.
func (t *Tracker) RecordProxy(confidence float64) Decision {
	if !t.cfg.UseProxy {
		return NoAlert
	}
	return t.Record(confidence >= t.cfg.LowConfidence)
}

// Stats returns a snapshot of the tracker state.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	incorrect := 0
	for _, correct := range t.window {
		if !correct {
			incorrect++
		}
	}

	return Stats{
		WindowLen:         len(t.window),
		WindowCap:         t.cfg.WindowSize,
		IncorrectInWindow: incorrect,
		Streak:            t.streak,
		Threshold:         t.cfg.Threshold,
		TotalRecorded:     t.total,
	}
}
