package metrics

import (
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"keywordmatrix/internal/models"
)

var (
	runsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "keywordmatrix_runs_total",
		Help: "Total classification runs by source",
	}, []string{"source"})

	keywordsClassified = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "keywordmatrix_keywords_classified_total",
		Help: "Total classified keywords by primary class and bucket",
	}, []string{"class", "bucket"})

	classifyDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "keywordmatrix_classify_duration_seconds",
		Help:    "Time spent classifying and aggregating one run",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	latestBucketDesc = prometheus.NewDesc(
		"keywordmatrix_latest_run_bucket_keywords",
		"Keyword count per bucket in the most recent run",
		[]string{"bucket"},
		nil,
	)
	latestVolumeDesc = prometheus.NewDesc(
		"keywordmatrix_latest_run_bucket_avg_search_volume",
		"Average total search volume per bucket in the most recent run",
		[]string{"bucket"},
		nil,
	)
)

// LatestRunCollector exposes the bucket statistics of the most recent run
// on each scrape.
type LatestRunCollector struct {
	mu    sync.RWMutex
	stats map[models.Bucket]models.CategoryStats
}

// Describe sends the metric descriptors to the channel.
func (c *LatestRunCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- latestBucketDesc
	ch <- latestVolumeDesc
}

// Collect emits one gauge pair per bucket of the latest run.
func (c *LatestRunCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for b, st := range c.stats {
		ch <- prometheus.MustNewConstMetric(latestBucketDesc, prometheus.GaugeValue, float64(st.Count), string(b))
		ch <- prometheus.MustNewConstMetric(latestVolumeDesc, prometheus.GaugeValue, st.AvgSearchVolume, string(b))
	}
}

func (c *LatestRunCollector) set(stats map[models.Bucket]models.CategoryStats) {
	c.mu.Lock()
	c.stats = stats
	c.mu.Unlock()
}

var (
	latest   *LatestRunCollector
	initOnce sync.Once
)

// Init registers the collectors. Must be called once at startup; recording
// before Init is a no-op.
func Init() {
	initOnce.Do(func() {
		latest = &LatestRunCollector{}
		prometheus.MustRegister(runsTotal, keywordsClassified, classifyDuration, latest)
		slog.Debug("metrics registered")
	})
}

// RecordRun counts a finished run and publishes its bucket statistics.
func RecordRun(run *models.Run, seconds float64) {
	if latest == nil || run == nil {
		return
	}
	runsTotal.WithLabelValues(run.Source).Inc()
	classifyDuration.Observe(seconds)
	for _, r := range run.Records {
		keywordsClassified.WithLabelValues(string(r.Class), string(r.Bucket)).Inc()
	}
	latest.set(run.Stats)
}
