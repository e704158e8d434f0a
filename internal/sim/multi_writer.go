package sim

import "manetbench/internal/metrics"

// MultiWriter fan-outs snapshot rows and reports to multiple writers.
type MultiWriter struct {
	snapWriters   []SnapshotWriter
	reportWriters []ReportWriter
}

// NewMultiWriter creates a new MultiWriter. Report writers are discovered
// among the snapshot writers.
func NewMultiWriter(sws ...SnapshotWriter) *MultiWriter {
	mw := &MultiWriter{snapWriters: sws}
	for _, w := range sws {
		if rw, ok := w.(ReportWriter); ok {
			mw.reportWriters = append(mw.reportWriters, rw)
		}
	}
	return mw
}

// WriteSnapshot sends a snapshot row to all writers.
func (mw *MultiWriter) WriteSnapshot(row metrics.SnapshotRow) error {
	for _, w := range mw.snapWriters {
		if err := w.WriteSnapshot(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteSnapshots sends multiple rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteSnapshots(rows []metrics.SnapshotRow) error {
	for _, w := range mw.snapWriters {
		if bw, ok := w.(batchSnapshotWriter); ok {
			if err := bw.WriteSnapshots(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteSnapshot(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteReport sends the final report to all report-capable writers.
func (mw *MultiWriter) WriteReport(r metrics.FinalReport) error {
	for _, w := range mw.reportWriters {
		if err := w.WriteReport(r); err != nil {
			return err
		}
	}
	return nil
}
