// Package metrics exposes Prometheus instrumentation for refresh cycles.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

// Metrics groups the collectors of the news agent. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry prometheus.Gatherer

	Refreshes        *prometheus.CounterVec
	RefreshDuration  prometheus.Histogram
	FetchErrors      *prometheus.CounterVec
	Insights         *prometheus.CounterVec
	LastArticles     *prometheus.GaugeVec
	LastAvgSentiment prometheus.Gauge
	LastRefresh      prometheus.Gauge
}

// New creates the collectors and registers them with reg. A nil reg uses a
// fresh private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: reg,

		Refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsagent_refreshes_total",
				Help: "Total number of refresh cycles",
			},
			[]string{"mode"}, // mode: live|demo|fallback
		),
		RefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "newsagent_refresh_duration_seconds",
				Help:    "Refresh cycle duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),
		FetchErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsagent_fetch_errors_total",
				Help: "Total number of failed article retrievals",
			},
			[]string{"source"},
		),
		Insights: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsagent_insights_total",
				Help: "Total number of insights generated",
			},
			[]string{"kind", "level"},
		),
		LastArticles: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "newsagent_last_refresh_articles",
				Help: "Articles in the last refresh by sentiment label",
			},
			[]string{"label"},
		),
		LastAvgSentiment: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "newsagent_last_refresh_avg_sentiment",
				Help: "Average sentiment score of the last refresh",
			},
		),
		LastRefresh: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "newsagent_last_refresh_timestamp",
				Help: "Unix timestamp of the last refresh",
			},
		),
	}

	reg.MustRegister(
		m.Refreshes,
		m.RefreshDuration,
		m.FetchErrors,
		m.Insights,
		m.LastArticles,
		m.LastAvgSentiment,
		m.LastRefresh,
	)
	return m
}

// ObserveFetchError counts a failed retrieval from source.
func (m *Metrics) ObserveFetchError(source string) {
	if m == nil {
		return
	}
	m.FetchErrors.WithLabelValues(source).Inc()
}

// ObserveReport records a completed refresh.
func (m *Metrics) ObserveReport(r *models.Report, took time.Duration) {
	if m == nil || r == nil {
		return
	}
	m.Refreshes.WithLabelValues(string(r.Mode)).Inc()
	m.RefreshDuration.Observe(took.Seconds())
	for _, in := range r.Insights {
		m.Insights.WithLabelValues(string(in.Kind), string(in.Level)).Inc()
	}
	m.LastArticles.WithLabelValues(string(models.SentimentPositive)).Set(float64(r.Stats.Positive))
	m.LastArticles.WithLabelValues(string(models.SentimentNegative)).Set(float64(r.Stats.Negative))
	m.LastArticles.WithLabelValues(string(models.SentimentNeutral)).Set(float64(r.Stats.Neutral))
	m.LastAvgSentiment.Set(r.Stats.AvgSentiment)
	m.LastRefresh.Set(float64(r.GeneratedAt.Unix()))
}

// Handler returns the HTTP handler serving the registered collectors.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
