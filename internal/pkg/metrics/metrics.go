package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger counters, exported on /metrics.
var (
	ClockEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_clock_events_total",
		Help: "Clock events processed by the ledger, by action.",
	}, []string{"action"})

	FinalizedSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_finalized_sessions_total",
		Help: "Open sessions force-closed at the day boundary.",
	})

	StoreFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_store_failures_total",
		Help: "Record store reads/writes that failed.",
	})
)
