package email

import (
	"fmt"
	"html"
	"time"

	"sentimeter/internal/config"
	"sentimeter/internal/metrics"
	"sentimeter/internal/tracker"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2563eb; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .value { color: #6b7280; }
        .warning { color: #d97706; }
        .error { color: #dc2626; }
        code { background: #e5e7eb; padding: 2px 6px; border-radius: 4px; font-family: monospace; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

// MisclassificationStreak generates the alert email sent when the tracker
// crosses the consecutive-incorrect threshold.
func (t *Templates) MisclassificationStreak(stats tracker.Stats) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] %d consecutive predictions judged incorrect", t.cfg.SiteTitle, stats.Threshold)

	content := fmt.Sprintf(`
        <p>The sentiment model has produced a streak of predictions judged incorrect.</p>

        <div class="info-box">
            <p><span class="label">Consecutive incorrect:</span> <span class="error">%d</span></p>
            <p><span class="label">Incorrect in last %d predictions:</span> %d</p>
            <p><span class="label">Total predictions tracked:</span> %d</p>
        </div>

        <p>Recent outcomes may be judged by the low-confidence proxy rather than ground
        truth, so treat this as a signal to investigate, not a measured accuracy drop.</p>

        <p style="text-align: center;">
            <a href="%s/history" class="button">Review Recent Predictions</a>
        </p>
    `,
		stats.Threshold,
		stats.WindowLen,
		stats.IncorrectInWindow,
		stats.TotalRecorded,
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Misclassification streak alert

Consecutive incorrect: %d
Incorrect in last %d predictions: %d
Total predictions tracked: %d

Recent outcomes may be judged by the low-confidence proxy rather than ground
truth, so treat this as a signal to investigate, not a measured accuracy drop.

Review at: %s/history

--
%s
%s`,
		stats.Threshold,
		stats.WindowLen,
		stats.IncorrectInWindow,
		stats.TotalRecorded,
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}

// MetricsDigest generates the periodic metrics summary email.
func (t *Templates) MetricsDigest(snap metrics.Snapshot) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Metrics Digest", t.cfg.SiteTitle)

	uptime := time.Since(snap.StartedAt).Round(time.Second)
	avgMS := float64(snap.AvgLatency()) / float64(time.Millisecond)

	content := fmt.Sprintf(`
        <p>Here's the current serving summary:</p>

        <div class="info-box">
            <p><span class="label">Uptime:</span> %s</p>
            <p><span class="label">Predictions served:</span> %d</p>
            <p><span class="label">Errors:</span> %d (%.1f%%)</p>
            <p><span class="label">Average latency:</span> %.2f ms</p>
            <p><span class="label">Positive predictions:</span> %d</p>
            <p><span class="label">Negative predictions:</span> %d</p>
            <p><span class="label">Feedback received:</span> %d correct, %d incorrect</p>
        </div>

        <p style="text-align: center;">
            <a href="%s" class="button">Go to Dashboard</a>
        </p>
    `,
		uptime,
		snap.Requests,
		snap.Errors,
		snap.ErrorRate()*100,
		avgMS,
		snap.ByLabel["positive"],
		snap.ByLabel["negative"],
		snap.FeedbackCorrect,
		snap.FeedbackIncorrect,
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Metrics Digest

Uptime: %s
Predictions served: %d
Errors: %d (%.1f%%)
Average latency: %.2f ms
Positive predictions: %d
Negative predictions: %d
Feedback received: %d correct, %d incorrect

Dashboard: %s

--
%s
%s`,
		uptime,
		snap.Requests,
		snap.Errors,
		snap.ErrorRate()*100,
		avgMS,
		snap.ByLabel["positive"],
		snap.ByLabel["negative"],
		snap.FeedbackCorrect,
		snap.FeedbackIncorrect,
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}
