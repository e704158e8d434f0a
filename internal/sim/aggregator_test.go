package sim

import (
	"errors"
	"math"
	"testing"

	"manetbench/internal/engine"
	"manetbench/internal/metrics"
)

// MockWriter collects snapshot rows for validation
type MockWriter struct {
	Rows    []metrics.SnapshotRow
	Reports []metrics.FinalReport
	failAt  int // 1-based row index to fail on, 0 disables
}

func (w *MockWriter) WriteSnapshot(row metrics.SnapshotRow) error {
	if w.failAt > 0 && len(w.Rows)+1 == w.failAt {
		return errors.New("disk full")
	}
	w.Rows = append(w.Rows, row)
	return nil
}

func (w *MockWriter) WriteReport(r metrics.FinalReport) error {
	w.Reports = append(w.Reports, r)
	return nil
}

func TestAggregator_TickSeries(t *testing.T) {
	sched := engine.NewScheduler()
	counters := metrics.NewCounters()
	writer := &MockWriter{}
	agg := NewMetricsAggregator(sched, counters, RunInfo{Protocol: "AODV", Sinks: 5, TxPower: 25}, writer, 9.0)

	// 500 bytes arrive during the first second, nothing afterwards.
	counters.PacketsSent = 4
	counters.PacketsReceived = 4
	counters.BytesSinceLastTick = 500
	agg.Start()
	sched.Run(10)

	if len(writer.Rows) != 9 {
		t.Fatalf("rows = %d, want 9 (t=1..9)", len(writer.Rows))
	}
	first := writer.Rows[0]
	if first.Time != 1.0 {
		t.Errorf("first tick at t=%v, want 1.0", first.Time)
	}
	if first.ThroughputKbps != 4.0 { // 500*8/1000
		t.Errorf("ThroughputKbps = %v, want 4.0", first.ThroughputKbps)
	}
	// Byte counter resets after the tick; received total does not.
	if writer.Rows[1].ThroughputKbps != 0 {
		t.Errorf("second tick throughput = %v, want 0 after reset", writer.Rows[1].ThroughputKbps)
	}
	for i, row := range writer.Rows {
		if row.PacketsReceived != 4 {
			t.Fatalf("row %d PacketsReceived = %d, cumulative total must persist", i, row.PacketsReceived)
		}
	}
}

func TestAggregator_MonotonicReceived(t *testing.T) {
	sched := engine.NewScheduler()
	counters := metrics.NewCounters()
	writer := &MockWriter{}
	agg := NewMetricsAggregator(sched, counters, RunInfo{}, writer, 5.0)
	agg.Start()
	// Deliveries trickle in between ticks.
	for i := 1; i <= 4; i++ {
		sched.ScheduleAt(float64(i)+0.5, func() {
			counters.PacketsReceived++
			counters.BytesSinceLastTick += 64
		})
	}
	sched.Run(10)

	var prev uint64
	for _, row := range writer.Rows {
		if row.PacketsReceived < prev {
			t.Fatalf("PacketsReceived decreased: %d after %d", row.PacketsReceived, prev)
		}
		prev = row.PacketsReceived
	}
}

func TestAggregator_ZeroDenominators(t *testing.T) {
	sched := engine.NewScheduler()
	writer := &MockWriter{}
	agg := NewMetricsAggregator(sched, metrics.NewCounters(), RunInfo{}, writer, 3.0)
	agg.Start()
	sched.Run(10)

	for _, row := range writer.Rows {
		if math.IsNaN(row.PDR) || math.IsNaN(row.AvgDelay) {
			t.Fatalf("NaN in empty-run row: %+v", row)
		}
		if row.PDR != 0 || row.AvgDelay != 0 {
			t.Errorf("empty run produced nonzero ratios: %+v", row)
		}
	}
}

func TestAggregator_StopsAtCutoff(t *testing.T) {
	sched := engine.NewScheduler()
	agg := NewMetricsAggregator(sched, metrics.NewCounters(), RunInfo{}, &MockWriter{}, 4.0)
	agg.Start()
	sched.Run(100)

	if len(agg.Rows()) != 4 {
		t.Errorf("ticks = %d, want 4 (stop at cutoff)", len(agg.Rows()))
	}
	if sched.Pending() != 0 {
		t.Errorf("aggregator left %d stray events queued", sched.Pending())
	}
}

func TestAggregator_WriterErrorIsFatal(t *testing.T) {
	sched := engine.NewScheduler()
	writer := &MockWriter{failAt: 2}
	agg := NewMetricsAggregator(sched, metrics.NewCounters(), RunInfo{}, writer, 10.0)
	agg.Start()
	sched.Run(100)

	if agg.Err() == nil {
		t.Fatal("writer failure not surfaced")
	}
	if len(writer.Rows) != 1 {
		t.Errorf("ticking continued after fatal write error: %d rows", len(writer.Rows))
	}
}
