package sim

import (
	"encoding/json"
	"os"

	"manetbench/internal/metrics"
)

// FileWriter writes snapshot rows and the final report to JSONL files.
type FileWriter struct {
	snapFile   *os.File
	reportFile *os.File
	snapEnc    *json.Encoder
	reportEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. reportPath may be empty to skip the
// report log.
func NewFileWriter(snapshotPath, reportPath string) (*FileWriter, error) {
	sf, err := os.Create(snapshotPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{snapFile: sf, snapEnc: json.NewEncoder(sf)}
	if reportPath != "" {
		rf, err := os.Create(reportPath)
		if err != nil {
			sf.Close()
			return nil, err
		}
		fw.reportFile = rf
		fw.reportEnc = json.NewEncoder(rf)
	}
	return fw, nil
}

// WriteSnapshot logs a single snapshot row.
func (f *FileWriter) WriteSnapshot(row metrics.SnapshotRow) error {
	return f.snapEnc.Encode(row)
}

// WriteSnapshots logs multiple snapshot rows.
func (f *FileWriter) WriteSnapshots(rows []metrics.SnapshotRow) error {
	for _, r := range rows {
		if err := f.WriteSnapshot(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport logs the final report, if enabled.
func (f *FileWriter) WriteReport(r metrics.FinalReport) error {
	if f.reportEnc == nil {
		return nil
	}
	return f.reportEnc.Encode(r)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.snapFile != nil {
		if e := f.snapFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.reportFile != nil {
		if e := f.reportFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
