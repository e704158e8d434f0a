package main

import (
	"os"

	"manetbench/internal/config"
	"manetbench/internal/sim"
)

// newWriters assembles the writer chain for a run: always the per-protocol
// CSV, plus GreptimeDB when an endpoint is configured (stdout otherwise),
// plus an optional JSONL export. The report writer is non-nil only when a
// log file captures the final summary. Cleanup closes any file handles.
func newWriters(cfg *config.ExperimentConfig, printOnly bool, logFile string) (sim.SnapshotWriter, sim.ReportWriter, func(), error) {
	csvw, err := sim.NewCSVWriter(cfg.OutputCSV())
	if err != nil {
		return nil, nil, nil, err
	}
	closers := []func() error{csvw.Close}
	cleanup := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	live, err := baseWriter(printOnly)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	writers := []sim.SnapshotWriter{csvw, live}

	var report sim.ReportWriter
	if logFile != "" {
		fw, err := sim.NewFileWriter(logFile, logFile+".report")
		if err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		closers = append(closers, fw.Close)
		writers = append(writers, fw)
		report = fw
	}

	return sim.NewMultiWriter(writers...), report, cleanup, nil
}

// baseWriter chooses the live output backend from flags and environment.
func baseWriter(printOnly bool) (sim.SnapshotWriter, error) {
	endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
	if printOnly || endpoint == "" {
		return &sim.StdoutWriter{}, nil
	}
	database := os.Getenv("GREPTIMEDB_DATABASE")
	if database == "" {
		database = "public"
	}
	return sim.NewGreptimeDBWriter(endpoint, database)
}
