package metrics

import "math"

// Counters is the single mutable aggregate behind all measurements. One
// instance is owned by the experiment and passed by pointer into every
// scheduler callback; nothing else holds a reference.
type Counters struct {
	BytesSinceLastTick uint64
	PacketsSent        uint64
	PacketsReceived    uint64
	PacketsDropped     uint64
	TotalDelay         float64
	DelaySamples       uint64
	MinDelay           float64
	MaxDelay           float64
	RoutingFrames      uint64
}

// NewCounters returns counters with the delay bounds primed so the first
// sample tightens both.
func NewCounters() *Counters {
	return &Counters{MinDelay: math.Inf(1), MaxDelay: 0}
}

// RecordDelay folds one one-way delay sample into the running statistics.
func (c *Counters) RecordDelay(d float64) {
	c.TotalDelay += d
	c.DelaySamples++
	if d < c.MinDelay {
		c.MinDelay = d
	}
	if d > c.MaxDelay {
		c.MaxDelay = d
	}
}

// PDR returns the packet delivery ratio, zero when nothing was sent.
func (c *Counters) PDR() float64 {
	if c.PacketsSent == 0 {
		return 0
	}
	return float64(c.PacketsReceived) / float64(c.PacketsSent)
}

// AvgDelay returns the mean one-way delay, zero without samples.
func (c *Counters) AvgDelay() float64 {
	if c.DelaySamples == 0 {
		return 0
	}
	return c.TotalDelay / float64(c.DelaySamples)
}
