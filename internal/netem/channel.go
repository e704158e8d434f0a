package netem

import (
	"errors"
	"math/rand"

	"manetbench/internal/engine"
)

// ErrSendFailed is returned when the transport refuses a packet at send time,
// the equivalent of a socket-level send error.
var ErrSendFailed = errors.New("netem: send failed")

// ErrClosed is returned for operations on a closed channel.
var ErrClosed = errors.New("netem: channel closed")

// ChannelConfig holds the impairment knobs for one flow's channel.
type ChannelConfig struct {
	// LossRate is the probability a sent packet is lost in transit: the send
	// succeeds but the packet is never delivered.
	LossRate float64 `yaml:"loss_rate"`
	// SendFailureRate is the probability Send returns an error without
	// transmitting anything.
	SendFailureRate float64 `yaml:"send_failure_rate"`
}

// Channel is a unidirectional source→sink packet pipe over the virtual
// scheduler. Delivery order follows delivery time, not send order.
type Channel struct {
	sched    *engine.Scheduler
	link     *LinkLayer
	delay    DelayModel
	cfg      ChannelConfig
	rng      *rand.Rand
	onRecv   func()
	pending  []*Packet
	inFlight map[*engine.Event]struct{}
	closed   bool
}

// NewChannel wires a channel to the scheduler, link layer, and delay model.
func NewChannel(sched *engine.Scheduler, link *LinkLayer, delay DelayModel, cfg ChannelConfig, rng *rand.Rand) *Channel {
	return &Channel{
		sched:    sched,
		link:     link,
		delay:    delay,
		cfg:      cfg,
		rng:      rng,
		inFlight: make(map[*engine.Event]struct{}),
	}
}

// OnReceive registers the ready-to-read notification. It fires once per
// delivered packet; the callback is expected to drain with Recv.
func (c *Channel) OnReceive(fn func()) {
	c.onRecv = fn
}

// Send transmits a packet. On success it returns the payload size and
// schedules delivery after the model delay, unless the packet is lost in
// transit. On failure nothing reaches the air.
func (c *Channel) Send(p *Packet) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if c.cfg.SendFailureRate > 0 && c.rng.Float64() < c.cfg.SendFailureRate {
		return 0, ErrSendFailed
	}

	c.link.Transmit(p.Size())

	if c.cfg.LossRate > 0 && c.rng.Float64() < c.cfg.LossRate {
		return p.Size(), nil
	}

	var ev *engine.Event
	ev = c.sched.Schedule(c.delay.Delay(c.sched.Now()), func() {
		delete(c.inFlight, ev)
		c.deliver(p)
	})
	c.inFlight[ev] = struct{}{}
	return p.Size(), nil
}

func (c *Channel) deliver(p *Packet) {
	if c.closed {
		return
	}
	c.pending = append(c.pending, p)
	if c.onRecv != nil {
		c.onRecv()
	}
}

// Recv pops the next delivered packet, if any.
func (c *Channel) Recv() (*Packet, bool) {
	if len(c.pending) == 0 {
		return nil, false
	}
	p := c.pending[0]
	c.pending = c.pending[1:]
	return p, true
}

// Close cancels in-flight deliveries and rejects further sends.
func (c *Channel) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for ev := range c.inFlight {
		c.sched.Cancel(ev)
	}
	c.inFlight = nil
	c.pending = nil
}
