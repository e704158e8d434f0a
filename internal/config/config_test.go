package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	yamlPath := writeTemp(t, "experiment.yaml", `
protocol: OLSR
nodes: 20
sinks: 4
total_time_s: 100.0
data_rate_bps: 4096
packet_size_bytes: 128
`)

	cfg, err := Load(yamlPath, "../../schemas/experiment.cue")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Protocol != "OLSR" || cfg.Sinks != 4 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.OverheadThresholdBytes != 200 {
		t.Errorf("overhead threshold default = %d, want 200", cfg.OverheadThresholdBytes)
	}
}

func TestLoadConfig_SchemaRejectsBadProtocol(t *testing.T) {
	yamlPath := writeTemp(t, "experiment.yaml", `
protocol: RIP
nodes: 20
sinks: 4
`)

	if _, err := Load(yamlPath, "../../schemas/experiment.cue"); err == nil {
		t.Fatal("Load() accepted a protocol outside the schema enum")
	}
}

func TestValidate_TopologyInvariant(t *testing.T) {
	cfg := Default()
	cfg.Sinks = 13 // 26 > 25 nodes
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted 2*sinks > nodes")
	}
}

func TestValidate_NonPositiveRate(t *testing.T) {
	cfg := Default()
	cfg.DataRateBps = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted a zero data rate")
	}
}

func TestValidate_ZeroSinksAllowed(t *testing.T) {
	cfg := Default()
	cfg.Sinks = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero sinks should be a valid no-traffic run: %v", err)
	}
}

func TestDerivedRates(t *testing.T) {
	cfg := Default() // 2048 bps, 64-byte packets, 30..200s window
	if pps := cfg.PacketsPerSecond(); pps != 4.0 {
		t.Errorf("PacketsPerSecond() = %v, want 4", pps)
	}
	if iv := cfg.SendInterval(); iv != 0.25 {
		t.Errorf("SendInterval() = %v, want 0.25", iv)
	}
	if n := cfg.PacketsPerFlow(); n != 680 {
		t.Errorf("PacketsPerFlow() = %d, want 680", n)
	}
}

func TestOutputCSV(t *testing.T) {
	cfg := Default()
	if got := cfg.OutputCSV(); got != "AODV-OUTPUT.csv" {
		t.Errorf("OutputCSV() = %q", got)
	}
	cfg.CSVFile = "custom.csv"
	if got := cfg.OutputCSV(); got != "custom.csv" {
		t.Errorf("OutputCSV() with override = %q", got)
	}
}
