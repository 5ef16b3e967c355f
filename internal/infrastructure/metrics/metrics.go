package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotelusers"

type Metrics struct {
	Counter         *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers the service collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Counter: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "general_counters",
			},
			[]string{"result"}),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"}),
	}
}
