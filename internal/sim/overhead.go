package sim

import (
	"manetbench/internal/metrics"
	"manetbench/internal/netem"
)

// OverheadClassifier counts link-layer frames below a size threshold as
// routing overhead. It is a heuristic, not protocol-aware: a small data
// fragment is counted the same as a genuine control frame. The threshold is
// configurable precisely so the imprecision stays comparable across runs.
type OverheadClassifier struct {
	threshold int
	counters  *metrics.Counters
}

// NewOverheadClassifier subscribes the classifier to every frame seen on the
// link layer.
func NewOverheadClassifier(link *netem.LinkLayer, threshold int, counters *metrics.Counters) *OverheadClassifier {
	oc := &OverheadClassifier{threshold: threshold, counters: counters}
	link.Subscribe(oc.observe)
	return oc
}

func (oc *OverheadClassifier) observe(frameSize int) {
	if frameSize < oc.threshold {
		oc.counters.RoutingFrames++
	}
}
