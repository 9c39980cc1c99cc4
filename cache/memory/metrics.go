package memory

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "menufs",
		Subsystem: "cache",
		Name:      "reloads_total",
		Help:      "Total number of cache rebuilds by result",
	}, []string{"result"})
	metricApplications = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "menufs",
		Subsystem: "cache",
		Name:      "applications",
		Help:      "Number of applications in the published tree",
	})
	metricEntryParsesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "menufs",
		Subsystem: "cache",
		Name:      "entry_parses_total",
		Help:      "Total number of desktop entries parsed from disk",
	})
)
