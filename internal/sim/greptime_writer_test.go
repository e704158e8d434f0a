package sim

import (
	"context"
	"testing"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"

	"manetbench/internal/metrics"
)

type mockGreptimeClient struct {
	table *table.Table
}

func (m *mockGreptimeClient) Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error) {
	if len(tables) > 0 {
		m.table = tables[0]
	}
	return &gpb.GreptimeResponse{}, nil
}

func TestGreptimeWriterBuildsRows(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC)
	rows := []metrics.SnapshotRow{
		{
			RunID:           "run-1",
			Protocol:        "AODV",
			Time:            1,
			ThroughputKbps:  4.096,
			PacketsReceived: 8,
			Sinks:           5,
			TxPower:         7.5,
			PDR:             0.95,
			AvgDelay:        0.012,
			RoutingOverhead: 10,
			Timestamp:       ts,
		},
		{
			RunID:           "run-1",
			Protocol:        "AODV",
			Time:            2,
			ThroughputKbps:  4.096,
			PacketsReceived: 16,
			Sinks:           5,
			TxPower:         7.5,
			PDR:             0.96,
			AvgDelay:        0.011,
			RoutingOverhead: 20,
			Timestamp:       ts.Add(time.Second),
		},
	}

	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, table: "manet_snapshots"}

	if err := w.WriteSnapshots(rows); err != nil {
		t.Fatalf("WriteSnapshots: %v", err)
	}
	if m.table == nil {
		t.Fatal("no table written")
	}
}

func TestGreptimeWriterSkipsEmptyBatch(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, table: "manet_snapshots"}
	if err := w.WriteSnapshots(nil); err != nil {
		t.Fatalf("WriteSnapshots: %v", err)
	}
	if m.table != nil {
		t.Fatal("expected no write for empty batch")
	}
}
