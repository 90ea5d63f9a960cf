package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRecorder_Accumulates(t *testing.T) {
	rec := NewRecorder()

	rec.Record(10*time.Millisecond, true)
	rec.Record(30*time.Millisecond, true)
	rec.Record(20*time.Millisecond, false)

	snap := rec.Snapshot()
	if snap.Requests != 3 {
		t.Errorf("requests = %d, want 3", snap.Requests)
	}
	if snap.Errors != 1 {
		t.Errorf("errors = %d, want 1", snap.Errors)
	}
	if snap.LatencySum != 60*time.Millisecond {
		t.Errorf("latency sum = %v, want 60ms", snap.LatencySum)
	}
	if snap.LatencyMin != 10*time.Millisecond {
		t.Errorf("latency min = %v, want 10ms", snap.LatencyMin)
	}
	if snap.LatencyMax != 30*time.Millisecond {
		t.Errorf("latency max = %v, want 30ms", snap.LatencyMax)
	}
	if snap.AvgLatency() != 20*time.Millisecond {
		t.Errorf("avg latency = %v, want 20ms", snap.AvgLatency())
	}
	if got := snap.ErrorRate(); got < 0.333 || got > 0.334 {
		t.Errorf("error rate = %v, want 1/3", got)
	}
}

func TestRecorder_EmptySnapshot(t *testing.T) {
	rec := NewRecorder()

	snap := rec.Snapshot()
	if snap.Requests != 0 || snap.Errors != 0 {
		t.Errorf("empty snapshot has counts: %+v", snap)
	}
	if snap.AvgLatency() != 0 {
		t.Errorf("avg latency with no requests = %v, want 0", snap.AvgLatency())
	}
	if snap.ErrorRate() != 0 {
		t.Errorf("error rate with no requests = %v, want 0", snap.ErrorRate())
	}
	if snap.StartedAt.IsZero() {
		t.Error("snapshot start time is zero")
	}
}

func TestRecorder_LabelsAndFeedback(t *testing.T) {
	rec := NewRecorder()

	rec.RecordLabel("positive")
	rec.RecordLabel("positive")
	rec.RecordLabel("negative")
	rec.RecordFeedback(true)
	rec.RecordFeedback(false)
	rec.RecordFeedback(false)

	snap := rec.Snapshot()
	if snap.ByLabel["positive"] != 2 || snap.ByLabel["negative"] != 1 {
		t.Errorf("label counts = %v, want positive:2 negative:1", snap.ByLabel)
	}
	if snap.FeedbackCorrect != 1 || snap.FeedbackIncorrect != 2 {
		t.Errorf("feedback = %d correct / %d incorrect, want 1/2", snap.FeedbackCorrect, snap.FeedbackIncorrect)
	}
}

func TestRecorder_SnapshotIsolation(t *testing.T) {
	rec := NewRecorder()
	rec.RecordLabel("positive")

	snap := rec.Snapshot()
	snap.ByLabel["positive"] = 999

	if got := rec.Snapshot().ByLabel["positive"]; got != 1 {
		t.Errorf("mutating a snapshot leaked into the recorder: count = %d, want 1", got)
	}
}

func TestRecorder_NoLostUpdatesUnderConcurrency(t *testing.T) {
	rec := NewRecorder()

	const goroutines = 25
	const perGoroutine = 200

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				rec.Record(time.Millisecond, i%10 != 0)
				rec.RecordLabel("positive")
			}
		}(g)
	}
	wg.Wait()

	snap := rec.Snapshot()
	want := uint64(goroutines * perGoroutine)
	if snap.Requests != want {
		t.Errorf("requests = %d, want %d (lost updates)", snap.Requests, want)
	}
	if snap.ByLabel["positive"] != want {
		t.Errorf("label count = %d, want %d", snap.ByLabel["positive"], want)
	}
	if snap.Errors != uint64(goroutines*perGoroutine/10) {
		t.Errorf("errors = %d, want %d", snap.Errors, goroutines*perGoroutine/10)
	}
	if snap.LatencySum != time.Duration(want)*time.Millisecond {
		t.Errorf("latency sum = %v, want %v", snap.LatencySum, time.Duration(want)*time.Millisecond)
	}
}

func TestCollector_Collect(t *testing.T) {
	rec := NewRecorder()
	rec.Record(5*time.Millisecond, true)
	rec.RecordLabel("positive")
	rec.RecordLabel("negative")
	rec.RecordFeedback(true)

	collector := NewCollector(rec)

	ch := make(chan prometheus.Metric, 32)
	collector.Collect(ch)
	close(ch)

	var count int
	for range ch {
		count++
	}

	// 5 scalar metrics + 2 labeled prediction counts + 2 feedback outcomes
	if count != 9 {
		t.Errorf("collected %d metrics, want 9", count)
	}
}

func TestCollector_Describe(t *testing.T) {
	ch := make(chan *prometheus.Desc, 16)
	NewCollector(NewRecorder()).Describe(ch)
	close(ch)

	var count int
	for range ch {
		count++
	}
	if count != 7 {
		t.Errorf("described %d metrics, want 7", count)
	}
}
