package menufs

import (
	"errors"

	"github.com/mwantia/menufs/data"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "menufs",
		Name:      "mutations_total",
		Help:      "Total number of filesystem mutations by operation and result",
	}, []string{"op", "result"})
	metricMonitorEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "menufs",
		Subsystem: "monitor",
		Name:      "events_total",
		Help:      "Total number of change events emitted by monitors",
	}, []string{"kind"})
	metricMonitors = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "menufs",
		Subsystem: "monitor",
		Name:      "active",
		Help:      "Number of live directory monitors",
	})
)

func observeMutation(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, data.ErrCancelled):
		result = "cancelled"
	case errors.Is(err, data.ErrNotFound):
		result = "not_found"
	case errors.Is(err, data.ErrInvalidOperation):
		result = "invalid"
	case errors.Is(err, data.ErrUnsatisfiable):
		result = "unsatisfiable"
	default:
		result = "error"
	}

	metricMutationsTotal.WithLabelValues(op, result).Inc()
}
