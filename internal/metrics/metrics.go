package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "scanmap_"

var (
	registerOnce sync.Once

	ingestBatches    *prometheus.CounterVec
	scansAccepted    prometheus.Counter
	scansDuplicate   prometheus.Counter
	scanInsertErrors prometheus.Counter
	linkFailures     prometheus.Counter
	sessionEvents    *prometheus.CounterVec
)

// Init registers ingestion and session metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		ingestBatches = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ingest_batches_total",
				Help: "Total ingest batches by result",
			},
			[]string{"result"},
		)
		scansAccepted = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "scans_accepted_total",
				Help: "Raw scans durably stored",
			},
		)
		scansDuplicate = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "scans_duplicate_total",
				Help: "Scans rejected by the dedup key",
			},
		)
		scanInsertErrors = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "scan_insert_errors_total",
				Help: "Scan inserts that failed for reasons other than the dedup key",
			},
		)
		linkFailures = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "link_failures_total",
				Help: "Room link writes that failed after a stored scan",
			},
		)
		sessionEvents = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "session_events_total",
				Help: "Scan session lifecycle transitions",
			},
			[]string{"event"},
		)

		prometheus.MustRegister(
			ingestBatches,
			scansAccepted,
			scansDuplicate,
			scanInsertErrors,
			linkFailures,
			sessionEvents,
		)
	})
}

func IngestBatch(result string) {
	if ingestBatches != nil {
		ingestBatches.WithLabelValues(result).Inc()
	}
}

func ScanAccepted() {
	if scansAccepted != nil {
		scansAccepted.Inc()
	}
}

func ScanDuplicate() {
	if scansDuplicate != nil {
		scansDuplicate.Inc()
	}
}

func ScanInsertError() {
	if scanInsertErrors != nil {
		scanInsertErrors.Inc()
	}
}

func LinkFailure() {
	if linkFailures != nil {
		linkFailures.Inc()
	}
}

func SessionEvent(event string) {
	if sessionEvents != nil {
		sessionEvents.WithLabelValues(event).Inc()
	}
}
