package sim

import (
	"fmt"
	"time"

	"manetbench/internal/engine"
	"manetbench/internal/metrics"
)

// tickInterval is the virtual-time cadence of metric snapshots.
const tickInterval = 1.0

// RunInfo is the static metadata stamped onto every snapshot row.
type RunInfo struct {
	RunID    string
	Protocol string
	Sinks    int
	TxPower  float64
}

// MetricsAggregator samples the running counters on a fixed virtual-time
// cadence and appends one snapshot row per tick. It owns the only reset of
// the byte counter; packetsReceived deliberately stays cumulative across
// ticks, matching the original harness's CSV column semantics.
type MetricsAggregator struct {
	sched     *engine.Scheduler
	counters  *metrics.Counters
	info      RunInfo
	writer    SnapshotWriter
	cutoff    float64
	wallStart time.Time

	rows []metrics.SnapshotRow
	next *engine.Event
	err  error
}

// NewMetricsAggregator builds an aggregator ticking until cutoff
// (totalTime - 1) virtual seconds.
func NewMetricsAggregator(sched *engine.Scheduler, counters *metrics.Counters, info RunInfo, writer SnapshotWriter, cutoff float64) *MetricsAggregator {
	return &MetricsAggregator{
		sched:     sched,
		counters:  counters,
		info:      info,
		writer:    writer,
		cutoff:    cutoff,
		wallStart: time.Now().UTC(),
	}
}

// Start schedules the first tick one virtual second in.
func (a *MetricsAggregator) Start() {
	a.next = a.sched.Schedule(tickInterval, a.tick)
}

func (a *MetricsAggregator) tick() {
	a.next = nil
	now := a.sched.Now()

	kbps := float64(a.counters.BytesSinceLastTick) * 8.0 / 1000.0
	a.counters.BytesSinceLastTick = 0

	row := metrics.SnapshotRow{
		RunID:           a.info.RunID,
		Protocol:        a.info.Protocol,
		Time:            now,
		ThroughputKbps:  kbps,
		PacketsReceived: a.counters.PacketsReceived,
		Sinks:           a.info.Sinks,
		TxPower:         a.info.TxPower,
		PDR:             a.counters.PDR(),
		AvgDelay:        a.counters.AvgDelay(),
		RoutingOverhead: a.counters.RoutingFrames,
		Timestamp:       a.wallStart.Add(time.Duration(now * float64(time.Second))),
	}
	a.rows = append(a.rows, row)

	if a.writer != nil {
		if err := a.writer.WriteSnapshot(row); err != nil {
			// A partial time series invalidates the experiment; stop ticking
			// and surface the error.
			a.err = fmt.Errorf("sim: snapshot write at t=%.1f: %w", now, err)
			return
		}
	}

	if now < a.cutoff {
		a.next = a.sched.Schedule(tickInterval, a.tick)
	}
}

// Stop cancels the pending tick, if any.
func (a *MetricsAggregator) Stop() {
	a.sched.Cancel(a.next)
	a.next = nil
}

// Rows returns the chronological snapshot sequence recorded so far.
func (a *MetricsAggregator) Rows() []metrics.SnapshotRow { return a.rows }

// Err returns the first fatal writer error, if any.
func (a *MetricsAggregator) Err() error { return a.err }
