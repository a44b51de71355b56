package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sitegrade/sitegrade/internal/config"
)

// Analysis outcome labels.
const (
	StatusOK              = "ok"
	StatusValidationError = "validation_error"
	StatusUnsupported     = "unsupported_content"
	StatusError           = "error"
)

type Collector struct {
	config config.MetricsConfig

	analysesTotal    *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	totalScore       prometheus.Histogram

	pagespeedTotal *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
}

func NewCollector(cfg config.MetricsConfig) *Collector {
	return &Collector{
		config: cfg,
		analysesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sitegrade_analyses_total",
			Help: "Analyses performed, labeled by outcome",
		}, []string{"status"}),
		analysisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sitegrade_analysis_duration_seconds",
			Help:    "End-to-end analysis duration",
			Buckets: []float64{0.5, 1, 2, 5, 10, 15, 30, 60},
		}),
		totalScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sitegrade_total_score",
			Help:    "Distribution of total audit scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
		pagespeedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sitegrade_pagespeed_requests_total",
			Help: "PageSpeed audit outcomes",
		}, []string{"outcome"}),
		cacheEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sitegrade_report_cache_events_total",
			Help: "Report cache hits and misses",
		}, []string{"event"}),
	}
}

func (c *Collector) RecordAnalysis(status string, seconds float64) {
	c.analysesTotal.WithLabelValues(status).Inc()
	if status == StatusOK {
		c.analysisDuration.Observe(seconds)
	}
}

func (c *Collector) RecordTotalScore(total int) {
	c.totalScore.Observe(float64(total))
}

func (c *Collector) RecordPageSpeed(outcome string) {
	c.pagespeedTotal.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordCache(event string) {
	c.cacheEvents.WithLabelValues(event).Inc()
}
