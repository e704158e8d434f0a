package sim

import (
	"context"
	"log/slog"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"manetbench/internal/metrics"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes snapshot rows to GreptimeDB via the ingester client
type GreptimeDBWriter struct {
	client greptimeClient
	table  string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer. The snapshot table is
// created on first write.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(endpoint).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &GreptimeDBWriter{client: client, table: metrics.SnapshotTableName}, nil
}

// WriteSnapshot inserts a single snapshot row.
func (w *GreptimeDBWriter) WriteSnapshot(row metrics.SnapshotRow) error {
	return w.WriteSnapshots([]metrics.SnapshotRow{row})
}

// WriteSnapshots inserts multiple snapshot rows.
func (w *GreptimeDBWriter) WriteSnapshots(rows []metrics.SnapshotRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.table)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("run_id", types.STRING)
	tbl.AddTagColumn("protocol", types.STRING)
	tbl.AddFieldColumn("time_s", types.FLOAT)
	tbl.AddFieldColumn("throughput_kbps", types.FLOAT)
	tbl.AddFieldColumn("packets_received", types.UINT64)
	tbl.AddFieldColumn("sinks", types.INT64)
	tbl.AddFieldColumn("tx_power", types.FLOAT)
	tbl.AddFieldColumn("pdr", types.FLOAT)
	tbl.AddFieldColumn("avg_delay", types.FLOAT)
	tbl.AddFieldColumn("routing_overhead", types.UINT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		err := tbl.AddRow(
			r.RunID,
			r.Protocol,
			r.Time,
			r.ThroughputKbps,
			r.PacketsReceived,
			int64(r.Sinks),
			r.TxPower,
			r.PDR,
			r.AvgDelay,
			r.RoutingOverhead,
			r.Timestamp,
		)
		if err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		slog.Error("greptime write failed", "err", err)
		return err
	}

	slog.Debug("greptime wrote rows", "count", len(rows))
	return nil
}
