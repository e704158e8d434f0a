// Cross-protocol comparison of experiment result files.
package analyze

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"manetbench/internal/metrics"
)

// ProtocolStats summarizes one protocol's time series.
type ProtocolStats struct {
	Protocol string
	Rows     int

	AvgThroughput float64
	MinThroughput float64
	MaxThroughput float64
	StdThroughput float64

	AvgPDR float64
	MinPDR float64
	MaxPDR float64

	AvgDelay float64
	MinDelay float64
	MaxDelay float64

	// TotalOverhead is the last row's cumulative routing frame count.
	TotalOverhead uint64
	// OverheadRate is the mean per-tick growth of the overhead counter.
	OverheadRate float64
}

// LoadCSV parses a time-series file written by the CSV writer.
func LoadCSV(path string) ([]metrics.SnapshotRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("analyze: parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("analyze: %s is empty", path)
	}

	var rows []metrics.SnapshotRow
	for i, rec := range records[1:] {
		if len(rec) != 9 {
			return nil, fmt.Errorf("analyze: %s row %d has %d columns, want 9", path, i+1, len(rec))
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("analyze: %s row %d: %w", path, i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (metrics.SnapshotRow, error) {
	var row metrics.SnapshotRow
	var err error
	if row.Time, err = strconv.ParseFloat(rec[0], 64); err != nil {
		return row, err
	}
	if row.ThroughputKbps, err = strconv.ParseFloat(rec[1], 64); err != nil {
		return row, err
	}
	if row.PacketsReceived, err = strconv.ParseUint(rec[2], 10, 64); err != nil {
		return row, err
	}
	if row.Sinks, err = strconv.Atoi(rec[3]); err != nil {
		return row, err
	}
	row.Protocol = rec[4]
	if row.TxPower, err = strconv.ParseFloat(rec[5], 64); err != nil {
		return row, err
	}
	if row.PDR, err = strconv.ParseFloat(rec[6], 64); err != nil {
		return row, err
	}
	if row.AvgDelay, err = strconv.ParseFloat(rec[7], 64); err != nil {
		return row, err
	}
	if row.RoutingOverhead, err = strconv.ParseUint(rec[8], 10, 64); err != nil {
		return row, err
	}
	return row, nil
}

// Compute derives the summary statistics for one protocol's rows.
func Compute(protocol string, rows []metrics.SnapshotRow) ProtocolStats {
	s := ProtocolStats{
		Protocol:      protocol,
		Rows:          len(rows),
		MinThroughput: math.Inf(1),
		MinPDR:        math.Inf(1),
		MinDelay:      math.Inf(1),
	}
	if len(rows) == 0 {
		s.MinThroughput, s.MinPDR, s.MinDelay = 0, 0, 0
		return s
	}

	var sumT, sumP, sumD float64
	for _, r := range rows {
		sumT += r.ThroughputKbps
		sumP += r.PDR
		sumD += r.AvgDelay
		s.MinThroughput = math.Min(s.MinThroughput, r.ThroughputKbps)
		s.MaxThroughput = math.Max(s.MaxThroughput, r.ThroughputKbps)
		s.MinPDR = math.Min(s.MinPDR, r.PDR)
		s.MaxPDR = math.Max(s.MaxPDR, r.PDR)
		s.MinDelay = math.Min(s.MinDelay, r.AvgDelay)
		s.MaxDelay = math.Max(s.MaxDelay, r.AvgDelay)
	}
	n := float64(len(rows))
	s.AvgThroughput = sumT / n
	s.AvgPDR = sumP / n
	s.AvgDelay = sumD / n

	var varT float64
	for _, r := range rows {
		d := r.ThroughputKbps - s.AvgThroughput
		varT += d * d
	}
	if len(rows) > 1 {
		s.StdThroughput = math.Sqrt(varT / (n - 1))
	}

	s.TotalOverhead = rows[len(rows)-1].RoutingOverhead
	if len(rows) > 1 {
		first := rows[0].RoutingOverhead
		s.OverheadRate = float64(s.TotalOverhead-first) / (n - 1)
	}
	return s
}

// LoadProtocol reads <protocol>-OUTPUT.csv from dir and computes its stats.
func LoadProtocol(dir, protocol string) (ProtocolStats, error) {
	path := fmt.Sprintf("%s/%s-OUTPUT.csv", dir, protocol)
	rows, err := LoadCSV(path)
	if err != nil {
		return ProtocolStats{}, err
	}
	return Compute(protocol, rows), nil
}

// ComparisonTable renders the cross-protocol summary table.
func ComparisonTable(stats []ProtocolStats) string {
	var b strings.Builder
	rule := strings.Repeat("-", 80)
	fmt.Fprintf(&b, "%-10s %-12s %-15s %-18s %-12s\n", "Protocol", "Avg PDR", "Avg Delay(s)", "Avg Tput(Kbps)", "Total OH")
	fmt.Fprintf(&b, "%s\n", rule)
	for _, s := range stats {
		fmt.Fprintf(&b, "%-10s %-12.4f %-15.6f %-18.2f %-12d\n",
			s.Protocol, s.AvgPDR, s.AvgDelay, s.AvgThroughput, s.TotalOverhead)
	}
	return b.String()
}

// DetailedReport renders per-protocol statistics blocks.
func DetailedReport(stats []ProtocolStats) string {
	var b strings.Builder
	for _, s := range stats {
		fmt.Fprintf(&b, "\n%s:\n", s.Protocol)
		fmt.Fprintf(&b, "  Throughput:\n")
		fmt.Fprintf(&b, "    Average: %.2f Kbps\n", s.AvgThroughput)
		fmt.Fprintf(&b, "    Min/Max: %.2f / %.2f Kbps\n", s.MinThroughput, s.MaxThroughput)
		fmt.Fprintf(&b, "    Std Dev: %.2f Kbps\n", s.StdThroughput)
		fmt.Fprintf(&b, "  Packet Delivery Ratio:\n")
		fmt.Fprintf(&b, "    Average: %.4f (%.2f%%)\n", s.AvgPDR, s.AvgPDR*100)
		fmt.Fprintf(&b, "    Min/Max: %.4f / %.4f\n", s.MinPDR, s.MaxPDR)
		fmt.Fprintf(&b, "  End-to-End Delay:\n")
		fmt.Fprintf(&b, "    Average: %.6f seconds\n", s.AvgDelay)
		fmt.Fprintf(&b, "    Min/Max: %.6f / %.6f seconds\n", s.MinDelay, s.MaxDelay)
		fmt.Fprintf(&b, "  Routing Overhead:\n")
		fmt.Fprintf(&b, "    Total packets: %d\n", s.TotalOverhead)
		fmt.Fprintf(&b, "    Average rate: %.2f packets/sec\n", s.OverheadRate)
	}
	return b.String()
}

// WriteSummary writes the full comparison to a text file.
func WriteSummary(path string, stats []ProtocolStats) error {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(&b, "%s\nROUTING PROTOCOL PERFORMANCE ANALYSIS\n%s\n\n", rule, rule)
	b.WriteString(ComparisonTable(stats))
	fmt.Fprintf(&b, "\n%s\nDETAILED STATISTICS\n%s\n", rule, rule)
	b.WriteString(DetailedReport(stats))
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
