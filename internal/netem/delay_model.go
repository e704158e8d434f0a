package netem

import (
	"math"
	"math/rand"
	"sort"
)

// DelayModel produces the one-way transit delay for a packet sent at a given
// virtual time.
type DelayModel interface {
	Delay(sendTime float64) float64
}

// FixedDelay delivers every packet after the same delay. Used by tests and
// degenerate topologies.
type FixedDelay float64

func (d FixedDelay) Delay(float64) float64 { return float64(d) }

// PathDelayConfig parameterizes a PathDelayModel.
type PathDelayConfig struct {
	BaseDelayMin   float64 `yaml:"base_delay_min_s"`
	BaseDelayMax   float64 `yaml:"base_delay_max_s"`
	TransitionRate float64 `yaml:"transition_rate_hz"`
	JitterMu       float64 `yaml:"jitter_mu"`
	JitterSigma    float64 `yaml:"jitter_sigma"`
}

// DefaultPathDelayConfig mirrors a multi-hop wireless path: base delay in the
// tens of milliseconds with occasional lognormal queueing spikes.
func DefaultPathDelayConfig() PathDelayConfig {
	return PathDelayConfig{
		BaseDelayMin:   0.020,
		BaseDelayMax:   0.080,
		TransitionRate: 0.05,
		JitterMu:       -4.6,
		JitterSigma:    0.8,
	}
}

type pathTransition struct {
	time      float64
	baseDelay float64
}

// PathDelayModel models a path whose base delay is piecewise constant,
// re-sampled at Poisson-distributed transition times (route changes), plus a
// lognormal per-packet jitter component.
type PathDelayModel struct {
	cfg         PathDelayConfig
	rng         *rand.Rand
	transitions []pathTransition
}

// NewPathDelayModel pre-generates base-delay transitions covering duration
// seconds of virtual time. The model is deterministic for a given rng state.
func NewPathDelayModel(cfg PathDelayConfig, duration float64, rng *rand.Rand) *PathDelayModel {
	m := &PathDelayModel{cfg: cfg, rng: rng}
	m.transitions = append(m.transitions, pathTransition{time: 0, baseDelay: m.sampleBase()})
	t := 0.0
	for cfg.TransitionRate > 0 {
		t += -math.Log(1.0-rng.Float64()) / cfg.TransitionRate
		if t >= duration {
			break
		}
		m.transitions = append(m.transitions, pathTransition{time: t, baseDelay: m.sampleBase()})
	}
	return m
}

func (m *PathDelayModel) sampleBase() float64 {
	return m.cfg.BaseDelayMin + m.rng.Float64()*(m.cfg.BaseDelayMax-m.cfg.BaseDelayMin)
}

// Delay returns base delay of the segment active at sendTime plus jitter.
func (m *PathDelayModel) Delay(sendTime float64) float64 {
	idx := sort.Search(len(m.transitions), func(i int) bool {
		return m.transitions[i].time > sendTime
	})
	base := m.transitions[0].baseDelay
	if idx > 0 {
		base = m.transitions[idx-1].baseDelay
	}
	jitter := math.Exp(m.cfg.JitterMu + m.cfg.JitterSigma*m.rng.NormFloat64())
	return base + jitter
}

// TransitionCount returns the number of base-delay segments.
func (m *PathDelayModel) TransitionCount() int { return len(m.transitions) }
