package alert

import (
	"log/slog"
	"sync"
	"time"

	"sentimeter/internal/tracker"
)

// Notifier delivers a misclassification-streak alert. Delivery is expected
// to be asynchronous and best-effort; failures must stay inside the notifier.
type Notifier interface {
	NotifyMisclassificationStreak(stats tracker.Stats)
}

// Dispatcher state machine: IDLE until an alert is dispatched, COOLDOWN
// until the cooldown interval elapses, then IDLE again.
const (
	StateIdle     = "idle"
	StateCooldown = "cooldown"
)

// Dispatcher sends a notification when the outcome tracker signals a
// threshold breach, suppressing repeats within the cooldown interval.
// Alerting is best-effort: nothing here ever propagates an error to the
// serving path.
type Dispatcher struct {
	mu        sync.Mutex
	lastAlert time.Time
	cooldown  time.Duration
	notifier  Notifier
	now       func() time.Time
}

// New creates a dispatcher in the IDLE state.
func New(notifier Notifier, cooldown time.Duration) *Dispatcher {
	return &Dispatcher{
		cooldown: cooldown,
		notifier: notifier,
		now:      time.Now,
	}
}

// MaybeAlert dispatches a notification for a ShouldAlert decision unless the
// cooldown is active. The cooldown slot is claimed under the lock before the
// notifier runs, so concurrent breaches cannot double-send and a slow mail
// transport never holds the lock.
func (d *Dispatcher) MaybeAlert(decision tracker.Decision, stats tracker.Stats) {
	if decision != tracker.ShouldAlert {
		return
	}

	d.mu.Lock()
	now := d.now()
	if !d.lastAlert.IsZero() && now.Sub(d.lastAlert) < d.cooldown {
		remaining := d.cooldown - now.Sub(d.lastAlert)
		d.mu.Unlock()
		slog.Info("misclassification alert suppressed, cooldown active",
			"streak_threshold", stats.Threshold,
			"incorrect_in_window", stats.IncorrectInWindow,
			"cooldown_remaining", remaining)
		return
	}
	d.lastAlert = now
	d.mu.Unlock()

	slog.Warn("misclassification streak detected, dispatching alert",
		"streak_threshold", stats.Threshold,
		"incorrect_in_window", stats.IncorrectInWindow,
		"window_len", stats.WindowLen)

	d.notifier.NotifyMisclassificationStreak(stats)
}

// State reports the current dispatcher state.
func (d *Dispatcher) State() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.lastAlert.IsZero() && d.now().Sub(d.lastAlert) < d.cooldown {
		return StateCooldown
	}
	return StateIdle
}
