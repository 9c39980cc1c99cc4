package dispatch

import (
	"errors"
	"time"

	"github.com/mwantia/menufs/data"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "menufs",
		Subsystem: "dispatch",
		Name:      "calls_total",
		Help:      "Total number of dispatched calls by result",
	}, []string{"dispatcher", "result"})
	metricCallSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "menufs",
		Subsystem: "dispatch",
		Name:      "call_seconds",
		Help:      "Time from hand-off until reply of dispatched calls",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"dispatcher"})
)

func observe(name string, started time.Time, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, data.ErrCancelled):
		result = "cancelled"
	case errors.Is(err, data.ErrStopped):
		result = "stopped"
	default:
		result = "error"
	}

	metricCallsTotal.WithLabelValues(name, result).Inc()
	metricCallSeconds.WithLabelValues(name).Observe(time.Since(started).Seconds())
}
