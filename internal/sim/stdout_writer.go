// Writer implementation printing snapshots to STDOUT
package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"manetbench/internal/metrics"
)

// StdoutWriter prints snapshot rows to STDOUT as JSON lines.
type StdoutWriter struct {
	out io.Writer
}

func (w *StdoutWriter) writer() io.Writer {
	if w.out != nil {
		return w.out
	}
	return os.Stdout
}

// WriteSnapshot outputs a single snapshot row.
func (w *StdoutWriter) WriteSnapshot(row metrics.SnapshotRow) error {
	data, _ := json.Marshal(row)
	_, err := fmt.Fprintln(w.writer(), string(data))
	return err
}

// WriteSnapshots outputs multiple snapshot rows.
func (w *StdoutWriter) WriteSnapshots(rows []metrics.SnapshotRow) error {
	for _, r := range rows {
		if err := w.WriteSnapshot(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport prints the human-readable final statistics banner.
func (w *StdoutWriter) WriteReport(r metrics.FinalReport) error {
	_, err := fmt.Fprintln(w.writer(), r.String())
	return err
}
