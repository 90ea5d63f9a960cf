package email

import (
	"log"

	"sentimeter/internal/config"
	"sentimeter/internal/metrics"
	"sentimeter/internal/tracker"
)

// Notifier sends email notifications for serving events to the configured
// alert recipients.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
	}
}

// IsEnabled returns true if the notifier can actually deliver mail.
func (n *Notifier) IsEnabled() bool {
	return n.service.IsEnabled() && len(n.cfg.AlertRecipients) > 0
}

// NotifyMisclassificationStreak emails the alert recipients about a
// consecutive-incorrect streak. Delivery is asynchronous and best-effort;
// failures are logged and never surface to the caller.
func (n *Notifier) NotifyMisclassificationStreak(stats tracker.Stats) {
	if !n.service.IsEnabled() {
		return
	}

	if len(n.cfg.AlertRecipients) == 0 {
		log.Println("No alert recipients configured, dropping misclassification alert")
		return
	}

	subject, htmlBody, textBody := n.templates.MisclassificationStreak(stats)
	n.service.SendAsync(n.cfg.AlertRecipients, subject, htmlBody, textBody)
}

// NotifyMetricsDigest emails the alert recipients the current metrics
// snapshot.
func (n *Notifier) NotifyMetricsDigest(snap metrics.Snapshot) {
	if !n.service.IsEnabled() || len(n.cfg.AlertRecipients) == 0 {
		return
	}

	subject, htmlBody, textBody := n.templates.MetricsDigest(snap)
	n.service.SendAsync(n.cfg.AlertRecipients, subject, htmlBody, textBody)
}
