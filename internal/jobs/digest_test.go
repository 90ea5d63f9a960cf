package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"sentimeter/internal/metrics"
)

type fakeDigestNotifier struct {
	mu    sync.Mutex
	snaps []metrics.Snapshot
}

func (f *fakeDigestNotifier) NotifyMetricsDigest(snap metrics.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snaps = append(f.snaps, snap)
}

func (f *fakeDigestNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.snaps)
}

func TestDigest_SendsOnInterval(t *testing.T) {
	rec := metrics.NewRecorder()
	rec.Record(5*time.Millisecond, true)

	notifier := &fakeDigestNotifier{}
	d := NewDigest(rec, notifier, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	d.Start(ctx)

	if notifier.count() == 0 {
		t.Fatal("no digest sent within 10x the interval")
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.snaps[0].Requests != 1 {
		t.Errorf("digest snapshot requests = %d, want 1", notifier.snaps[0].Requests)
	}
}

func TestDigest_StopsOnCancel(t *testing.T) {
	notifier := &fakeDigestNotifier{}
	d := NewDigest(metrics.NewRecorder(), notifier, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		d.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("digest loop did not stop on context cancellation")
	}

	if notifier.count() != 0 {
		t.Errorf("digests sent before first interval = %d, want 0", notifier.count())
	}
}
