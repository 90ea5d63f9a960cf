package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	predictionsDesc = prometheus.NewDesc(
		"sentimeter_predictions_total",
		"Total prediction request count",
		nil,
		nil,
	)
	errorsDesc = prometheus.NewDesc(
		"sentimeter_prediction_errors_total",
		"Total failed prediction request count",
		nil,
		nil,
	)
	byLabelDesc = prometheus.NewDesc(
		"sentimeter_predictions_by_label_total",
		"Total prediction count by label",
		[]string{"label"},
		nil,
	)
	feedbackDesc = prometheus.NewDesc(
		"sentimeter_feedback_total",
		"Total user feedback count by outcome",
		[]string{"outcome"},
		nil,
	)
	latencySumDesc = prometheus.NewDesc(
		"sentimeter_prediction_latency_seconds_sum",
		"Cumulative prediction latency in seconds",
		nil,
		nil,
	)
	latencyMinDesc = prometheus.NewDesc(
		"sentimeter_prediction_latency_seconds_min",
		"Minimum observed prediction latency in seconds",
		nil,
		nil,
	)
	latencyMaxDesc = prometheus.NewDesc(
		"sentimeter_prediction_latency_seconds_max",
		"Maximum observed prediction latency in seconds",
		nil,
		nil,
	)
)

// Collector is a custom Prometheus collector that reads the in-memory
// recorder on each scrape.
type Collector struct {
	rec *Recorder
}

// NewCollector creates a collector over the given recorder.
func NewCollector(rec *Recorder) *Collector {
	return &Collector{rec: rec}
}

// Describe sends all metric descriptors to the channel.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- predictionsDesc
	ch <- errorsDesc
	ch <- byLabelDesc
	ch <- feedbackDesc
	ch <- latencySumDesc
	ch <- latencyMinDesc
	ch <- latencyMaxDesc
}

// Collect snapshots the recorder and emits its counters and gauges.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.rec.Snapshot()

	ch <- prometheus.MustNewConstMetric(predictionsDesc, prometheus.CounterValue, float64(snap.Requests))
	ch <- prometheus.MustNewConstMetric(errorsDesc, prometheus.CounterValue, float64(snap.Errors))
	for label, count := range snap.ByLabel {
		ch <- prometheus.MustNewConstMetric(byLabelDesc, prometheus.CounterValue, float64(count), label)
	}
	ch <- prometheus.MustNewConstMetric(feedbackDesc, prometheus.CounterValue, float64(snap.FeedbackCorrect), "correct")
	ch <- prometheus.MustNewConstMetric(feedbackDesc, prometheus.CounterValue, float64(snap.FeedbackIncorrect), "incorrect")
	ch <- prometheus.MustNewConstMetric(latencySumDesc, prometheus.CounterValue, snap.LatencySum.Seconds())
	ch <- prometheus.MustNewConstMetric(latencyMinDesc, prometheus.GaugeValue, snap.LatencyMin.Seconds())
	ch <- prometheus.MustNewConstMetric(latencyMaxDesc, prometheus.GaugeValue, snap.LatencyMax.Seconds())
}

var registerOnce sync.Once

// Register registers the collector with the default Prometheus registry.
// Must be called once at startup.
func Register(rec *Recorder) {
	registerOnce.Do(func() {
		prometheus.MustRegister(NewCollector(rec))
	})
}
