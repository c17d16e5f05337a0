package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type BatchMetrics struct {
	registry *prometheus.Registry

	documentsTotal  *prometheus.CounterVec
	analyzeDuration *prometheus.HistogramVec
	batchInFlight   prometheus.Gauge
	dailySpendUSD   prometheus.Gauge
	monthlySpendUSD prometheus.Gauge
}

func NewBatchMetrics(service string) *BatchMetrics {
	registry := prometheus.NewRegistry()

	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "analyzer",
			Subsystem: "batch",
			Name:      "documents_total",
			Help:      "Total analyzed documents by status.",
		},
		[]string{"service", "status"},
	)
	analyzeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "analyzer",
			Subsystem: "batch",
			Name:      "analyze_duration_seconds",
			Help:      "Per-document analysis call duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	batchInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "analyzer",
			Subsystem: "batch",
			Name:      "in_flight",
			Help:      "Number of batches currently running.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	dailySpendUSD := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "analyzer",
			Subsystem: "ledger",
			Name:      "daily_spend_usd",
			Help:      "Recorded spend for the current calendar day.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	monthlySpendUSD := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "analyzer",
			Subsystem: "ledger",
			Name:      "monthly_spend_usd",
			Help:      "Recorded spend for the current calendar month.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(documentsTotal, analyzeDuration, batchInFlight, dailySpendUSD, monthlySpendUSD)

	return &BatchMetrics{
		registry:        registry,
		documentsTotal:  documentsTotal,
		analyzeDuration: analyzeDuration,
		batchInFlight:   batchInFlight,
		dailySpendUSD:   dailySpendUSD,
		monthlySpendUSD: monthlySpendUSD,
	}
}

func (m *BatchMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *BatchMetrics) StartBatch() {
	m.batchInFlight.Inc()
}

func (m *BatchMetrics) FinishBatch() {
	m.batchInFlight.Dec()
}

func (m *BatchMetrics) ObserveDocument(service string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.documentsTotal.WithLabelValues(service, status).Inc()
	m.analyzeDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *BatchMetrics) SetSpend(daily, monthly float64) {
	m.dailySpendUSD.Set(daily)
	m.monthlySpendUSD.Set(monthly)
}
