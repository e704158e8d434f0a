// Metric row structs with greptime tags
package metrics

import (
	"os"
	"time"
)

// SnapshotRow is one per-tick sample of the running experiment metrics.
// PacketsReceived is a running total, not a per-tick delta; only the byte
// counter behind ThroughputKbps resets each tick. The asymmetry is inherited
// from the original harness and kept so result files stay comparable.
type SnapshotRow struct {
	RunID           string    `json:"run_id"`           // TAG
	Protocol        string    `json:"protocol"`         // TAG
	Time            float64   `json:"time"`             // FIELD, virtual seconds
	ThroughputKbps  float64   `json:"throughput_kbps"`  // FIELD
	PacketsReceived uint64    `json:"packets_received"` // FIELD, cumulative
	Sinks           int       `json:"sinks"`            // FIELD
	TxPower         float64   `json:"tx_power"`         // FIELD, dBm
	PDR             float64   `json:"pdr"`              // FIELD
	AvgDelay        float64   `json:"avg_delay"`        // FIELD, seconds
	RoutingOverhead uint64    `json:"routing_overhead"` // FIELD, cumulative frames
	Timestamp       time.Time `json:"ts"`               // TIME INDEX
}

// SnapshotTableName holds the table name used when writing to GreptimeDB.
// It defaults to "manet_snapshots" but can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var SnapshotTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "manet_snapshots"
}()

func (SnapshotRow) TableName() string {
	return SnapshotTableName
}
