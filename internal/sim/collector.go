package sim

import (
	"fmt"

	"manetbench/internal/engine"
	"manetbench/internal/metrics"
	"manetbench/internal/netem"
)

// ReceiveCollector drains delivered packets and folds their one-way delay
// into the counters. Packets without a timestamp tag still count toward byte
// and packet totals, so control traffic received on the same socket does not
// corrupt the delay statistics.
type ReceiveCollector struct {
	sched    *engine.Scheduler
	counters *metrics.Counters

	// onViolation receives clock-ordering and tag-corruption errors. These
	// are invariant violations: the sample is discarded and the experiment
	// fails loudly instead of absorbing a poisoned aggregate.
	onViolation func(error)
}

// NewReceiveCollector builds a collector over the shared counters.
func NewReceiveCollector(sched *engine.Scheduler, counters *metrics.Counters, onViolation func(error)) *ReceiveCollector {
	if onViolation == nil {
		onViolation = func(error) {}
	}
	return &ReceiveCollector{sched: sched, counters: counters, onViolation: onViolation}
}

// receiver is the drainable side of a channel.
type receiver interface {
	Recv() (*netem.Packet, bool)
}

// Attach registers the collector as ch's receive handler.
func (rc *ReceiveCollector) Attach(ch *netem.Channel) {
	ch.OnReceive(func() { rc.Drain(ch) })
}

// Drain consumes every pending packet on ch in one notification.
func (rc *ReceiveCollector) Drain(ch receiver) {
	for {
		p, ok := ch.Recv()
		if !ok {
			return
		}
		if p.Size() == 0 {
			continue
		}

		rc.counters.BytesSinceLastTick += uint64(p.Size())
		rc.counters.PacketsReceived++

		t0, tagged, err := p.Timestamp()
		if err != nil {
			rc.onViolation(err)
			continue
		}
		if !tagged {
			continue
		}
		delay := rc.sched.Now() - t0
		if delay < 0 {
			rc.onViolation(fmt.Errorf("sim: negative delay %.6fs for packet sent at t=%.6f", delay, t0))
			continue
		}
		rc.counters.RecordDelay(delay)
	}
}
