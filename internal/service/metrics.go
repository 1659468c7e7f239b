package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"brewery_dashboard/internal/models"
)

// Refresh outcomes recorded in refreshTotal.
const (
	outcomeSuccess       = "success"
	outcomeFailure       = "failure"
	outcomeStale         = "stale"
	outcomeTriggerFailed = "trigger_failed"
)

var (
	refreshDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "brewery",
		Name:      "refresh_duration_seconds",
		Help:      "Time to fetch sources and rebuild the vessel snapshot.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"trigger"})

	refreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "brewery",
		Name:      "refresh_total",
		Help:      "Refresh runs by trigger and outcome.",
	}, []string{"trigger", "outcome"})

	occupiedVessels = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "brewery",
		Name:      "occupied_vessels",
		Help:      "Vessels holding a batch in the latest snapshot.",
	})

	telemetryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "brewery",
		Name:      "telemetry_failures_total",
		Help:      "Refreshes that ran without the telemetry feed.",
	})

	parseWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "brewery",
		Name:      "sheet_parse_warnings_total",
		Help:      "Spreadsheet cells that could not be parsed and were treated as absent.",
	})
)

// RecordParseWarning counts a cell the engine skipped.
func RecordParseWarning() { parseWarnings.Inc() }

func observeSnapshot(s models.Snapshot) {
	n := 0
	for _, v := range s.Vessels {
		if !v.IsEmpty {
			n++
		}
	}
	occupiedVessels.Set(float64(n))
}
