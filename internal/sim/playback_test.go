package sim

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"manetbench/internal/metrics"
)

func TestReplayLog(t *testing.T) {
	rows := []metrics.SnapshotRow{
		{RunID: "run-1", Protocol: "AODV", Time: 1, Timestamp: time.Unix(0, 0)},
		{RunID: "run-1", Protocol: "AODV", Time: 2, Timestamp: time.Unix(1, 0)},
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}

	mw := &MockWriter{}
	if err := ReplayLog(&buf, mw, 0); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if len(mw.Rows) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(mw.Rows))
	}
	for i, r := range rows {
		if mw.Rows[i].Time != r.Time {
			t.Fatalf("row %d mismatch: %+v vs %+v", i, mw.Rows[i], r)
		}
	}
}

func TestReplayLogBadLine(t *testing.T) {
	buf := bytes.NewBufferString("not json\n")
	if err := ReplayLog(buf, &MockWriter{}, 0); err == nil {
		t.Fatal("expected error for malformed log")
	}
}
