package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeOK            = "ok"
	OutcomeMissingFields = "missing_fields"
	OutcomeInvalid       = "invalid"
	OutcomeTooSimilar    = "too_similar"
	OutcomeNotFound      = "not_found"
	OutcomeError         = "error"
)

var (
	factsDesc = prometheus.NewDesc(
		"yorkfacts_facts",
		"Number of facts currently in the store",
		nil,
		nil,
	)

	submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "yorkfacts_submissions_total",
		Help: "Fact submissions by outcome",
	}, []string{"outcome"})

	deletions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "yorkfacts_deletions_total",
		Help: "Delete-by-question requests by outcome",
	}, []string{"outcome"})

	similarityScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "yorkfacts_similarity_score",
		Help:    "Best similarity score of submitted questions against the store",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})
)

// Counter is the part of the fact store the collector needs.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// FactCollector is a custom Prometheus collector that reads the fact
// count from the store on each scrape.
type FactCollector struct {
	store Counter
}

// NewFactCollector creates a collector backed by store.
func NewFactCollector(store Counter) *FactCollector {
	return &FactCollector{store: store}
}

// Describe sends the metric descriptor to the channel.
func (c *FactCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- factsDesc
}

// Collect queries the store and emits the count as a gauge.
func (c *FactCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := c.store.Count(ctx)
	if err != nil {
		slog.Error("failed to collect fact count", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(factsDesc, prometheus.GaugeValue, float64(n))
}

var initOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup.
func Init(store Counter) {
	initOnce.Do(func() {
		prometheus.MustRegister(
			NewFactCollector(store),
			submissions,
			deletions,
			similarityScore,
		)
	})
}

// RecordSubmission counts a submission outcome.
func RecordSubmission(outcome string) {
	submissions.WithLabelValues(outcome).Inc()
}

// RecordDeletion counts a deletion outcome.
func RecordDeletion(outcome string) {
	deletions.WithLabelValues(outcome).Inc()
}

// ObserveSimilarity records the best score a submission reached.
func ObserveSimilarity(score float64) {
	similarityScore.Observe(score)
}
