package library

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "germination_library_mutations_total",
		Help: "Library mutations by operation and outcome.",
	}, []string{"op", "outcome"})
	organizeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "germination_library_organize_seconds",
		Help:    "Time spent rebuilding library sections.",
		Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
	})
	plantsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "germination_library_plants",
		Help: "Plants in the library after the last reorganization.",
	})
)

func recordMutation(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	mutationsTotal.WithLabelValues(op, outcome).Inc()
}
