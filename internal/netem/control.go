package netem

import (
	"math/rand"

	"manetbench/internal/engine"
)

// ControlProfile describes how a routing protocol loads the air with control
// frames. The harness never inspects frame contents, only sizes, so the
// profile is purely a frame-size and cadence model.
type ControlProfile struct {
	// HelloInterval is the per-node cadence of periodic control frames.
	// Zero disables periodic frames (pure on-demand protocols).
	HelloInterval float64
	// HelloSize is the on-air size of a periodic control frame.
	HelloSize int
	// DiscoveryBurst is the number of flooded frames emitted per node when a
	// flow starts, modeling on-demand route discovery.
	DiscoveryBurst int
	// DiscoverySize is the on-air size of one discovery frame.
	DiscoverySize int
}

// ControlConfig carries optional configuration overrides for the protocol
// profile. Zero values leave the profile defaults untouched.
type ControlConfig struct {
	HelloIntervalS float64 `yaml:"hello_interval_s"`
	DiscoveryBurst int     `yaml:"discovery_burst"`
}

// Apply returns the profile with any configured overrides folded in.
func (p ControlProfile) Apply(c ControlConfig) ControlProfile {
	if c.HelloIntervalS > 0 {
		p.HelloInterval = c.HelloIntervalS
	}
	if c.DiscoveryBurst > 0 {
		p.DiscoveryBurst = c.DiscoveryBurst
	}
	return p
}

// ProfileFor returns the control model for a protocol name. Reactive
// protocols (AODV, DSR) lean on discovery floods; proactive ones (OLSR, DSDV)
// keep a steady hello cadence. Unknown names get a quiet profile.
func ProfileFor(protocol string) ControlProfile {
	switch protocol {
	case "AODV":
		return ControlProfile{HelloInterval: 1.0, HelloSize: 48, DiscoveryBurst: 3, DiscoverySize: 64}
	case "DSR":
		return ControlProfile{HelloInterval: 0, DiscoveryBurst: 4, DiscoverySize: 80}
	case "OLSR":
		return ControlProfile{HelloInterval: 0.5, HelloSize: 60}
	case "DSDV":
		return ControlProfile{HelloInterval: 2.0, HelloSize: 96}
	default:
		return ControlProfile{}
	}
}

// ControlPlane emits protocol control frames onto the link layer so that
// overhead measurements see a realistic mix of small frames alongside data.
type ControlPlane struct {
	sched   *engine.Scheduler
	link    *LinkLayer
	profile ControlProfile
	nodes   int
	cutoff  float64
	rng     *rand.Rand
	events  []*engine.Event
}

// NewControlPlane builds a control plane for nodes stations running until
// cutoff virtual seconds.
func NewControlPlane(sched *engine.Scheduler, link *LinkLayer, profile ControlProfile, nodes int, cutoff float64, rng *rand.Rand) *ControlPlane {
	return &ControlPlane{
		sched:   sched,
		link:    link,
		profile: profile,
		nodes:   nodes,
		cutoff:  cutoff,
		rng:     rng,
	}
}

// Start schedules the periodic hello cadence for every node, with a random
// phase so nodes do not beacon in lockstep.
func (cp *ControlPlane) Start() {
	if cp.profile.HelloInterval <= 0 {
		return
	}
	for i := 0; i < cp.nodes; i++ {
		phase := cp.rng.Float64() * cp.profile.HelloInterval
		ev := cp.sched.Schedule(phase, cp.helloTick)
		cp.events = append(cp.events, ev)
	}
}

func (cp *ControlPlane) helloTick() {
	if cp.sched.Now() >= cp.cutoff {
		return
	}
	cp.link.TransmitRaw(cp.profile.HelloSize)
	ev := cp.sched.Schedule(cp.profile.HelloInterval, cp.helloTick)
	cp.events = append(cp.events, ev)
}

// FlowStarted models the route-discovery flood triggered when a source first
// needs a route: each node relays DiscoveryBurst frames spread over the next
// second of virtual time.
func (cp *ControlPlane) FlowStarted() {
	if cp.profile.DiscoveryBurst <= 0 {
		return
	}
	for i := 0; i < cp.nodes; i++ {
		for b := 0; b < cp.profile.DiscoveryBurst; b++ {
			ev := cp.sched.Schedule(cp.rng.Float64(), func() {
				if cp.sched.Now() < cp.cutoff {
					cp.link.TransmitRaw(cp.profile.DiscoverySize)
				}
			})
			cp.events = append(cp.events, ev)
		}
	}
}

// Stop cancels all pending control-plane events.
func (cp *ControlPlane) Stop() {
	for _, ev := range cp.events {
		cp.sched.Cancel(ev)
	}
	cp.events = nil
}
