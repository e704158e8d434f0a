package metrics

import (
	"fmt"
	"math"
	"strings"
)

// FinalReport is the full-run summary emitted after the scheduler drains.
// Min/max delay and the routing frame total appear only here, never in the
// per-tick rows.
type FinalReport struct {
	RunID           string  `json:"run_id"`
	Protocol        string  `json:"protocol"`
	PacketsSent     uint64  `json:"packets_sent"`
	PacketsReceived uint64  `json:"packets_received"`
	PacketsDropped  uint64  `json:"packets_dropped"`
	PDR             float64 `json:"pdr"`
	AvgDelay        float64 `json:"avg_delay"`
	MinDelay        float64 `json:"min_delay"`
	MaxDelay        float64 `json:"max_delay"`
	RoutingFrames   uint64  `json:"routing_frames"`
}

// Summarize evaluates the final formulas once over the full-run totals.
func Summarize(runID, protocol string, c *Counters) FinalReport {
	return FinalReport{
		RunID:           runID,
		Protocol:        protocol,
		PacketsSent:     c.PacketsSent,
		PacketsReceived: c.PacketsReceived,
		PacketsDropped:  c.PacketsDropped,
		PDR:             c.PDR(),
		AvgDelay:        c.AvgDelay(),
		MinDelay:        c.MinDelay,
		MaxDelay:        c.MaxDelay,
		RoutingFrames:   c.RoutingFrames,
	}
}

// String renders the human-readable statistics banner.
func (r FinalReport) String() string {
	var b strings.Builder
	rule := strings.Repeat("=", 40)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "FINAL STATISTICS - %s\n", r.Protocol)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Total packets sent: %d\n", r.PacketsSent)
	fmt.Fprintf(&b, "Total packets received: %d\n", r.PacketsReceived)
	fmt.Fprintf(&b, "Packets dropped: %d\n", r.PacketsDropped)
	fmt.Fprintf(&b, "Overall PDR: %.4f%%\n", r.PDR*100)
	fmt.Fprintf(&b, "Average delay: %.6f seconds\n", r.AvgDelay)
	if math.IsInf(r.MinDelay, 1) {
		fmt.Fprintf(&b, "Min delay: n/a\n")
	} else {
		fmt.Fprintf(&b, "Min delay: %.6f seconds\n", r.MinDelay)
	}
	fmt.Fprintf(&b, "Max delay: %.6f seconds\n", r.MaxDelay)
	fmt.Fprintf(&b, "Total routing packets: %d\n", r.RoutingFrames)
	fmt.Fprintf(&b, "%s", rule)
	return b.String()
}
