// Experiment harness orchestrating traffic generation and metric collection.
package sim

import "manetbench/internal/metrics"

// SnapshotWriter is an interface to support different output writers.
type SnapshotWriter interface {
	WriteSnapshot(metrics.SnapshotRow) error
}

// Optional: writers can also support batch mode
type batchSnapshotWriter interface {
	WriteSnapshots([]metrics.SnapshotRow) error
}

// ReportWriter handles the final full-run summary.
type ReportWriter interface {
	WriteReport(metrics.FinalReport) error
}
