package jobs

import (
	"context"
	"log"
	"time"

	"sentimeter/internal/metrics"
)

// DigestNotifier delivers a metrics digest email.
type DigestNotifier interface {
	NotifyMetricsDigest(snap metrics.Snapshot)
}

// Digest periodically emails the current metrics snapshot to the alert
// recipients.
type Digest struct {
	rec      *metrics.Recorder
	notifier DigestNotifier
	interval time.Duration
}

// NewDigest creates a new digest job.
func NewDigest(rec *metrics.Recorder, notifier DigestNotifier, interval time.Duration) *Digest {
	return &Digest{
		rec:      rec,
		notifier: notifier,
		interval: interval,
	}
}

// Start begins the digest loop. The first digest goes out after one full
// interval; a digest at startup would always be empty.
func (d *Digest) Start(ctx context.Context) {
	log.Printf("Metrics digest started (interval: %v)", d.interval)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Metrics digest stopped")
			return
		case <-ticker.C:
			d.notifier.NotifyMetricsDigest(d.rec.Snapshot())
		}
	}
}
