package sim

import (
	"fmt"
	"os"

	"manetbench/internal/metrics"
)

// csvHeader is the fixed column contract shared with downstream analysis
// tooling. Column order and 4-decimal float formatting must not change.
const csvHeader = "Time,ThroughputKbps,PacketsReceived,Sinks,Protocol,TxPower,PDR,AvgDelay,RoutingOverhead\n"

// CSVWriter appends one delimited row per tick to the time-series file.
// Any write error is fatal to the run: a partial series invalidates the
// experiment.
type CSVWriter struct {
	file *os.File
}

// NewCSVWriter truncates path and writes the header row.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := f.WriteString(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	return &CSVWriter{file: f}, nil
}

// WriteSnapshot appends one row.
func (w *CSVWriter) WriteSnapshot(row metrics.SnapshotRow) error {
	_, err := fmt.Fprintf(w.file, "%.4f,%.4f,%d,%d,%s,%.4f,%.4f,%.4f,%d\n",
		row.Time,
		row.ThroughputKbps,
		row.PacketsReceived,
		row.Sinks,
		row.Protocol,
		row.TxPower,
		row.PDR,
		row.AvgDelay,
		row.RoutingOverhead)
	return err
}

// WriteSnapshots appends multiple rows.
func (w *CSVWriter) WriteSnapshots(rows []metrics.SnapshotRow) error {
	for _, r := range rows {
		if err := w.WriteSnapshot(r); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *CSVWriter) Close() error {
	return w.file.Close()
}
