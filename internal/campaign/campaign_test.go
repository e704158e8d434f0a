package campaign

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"manetbench/internal/config"
	"manetbench/internal/netem"
)

func smallConfig() *config.ExperimentConfig {
	cfg := config.Default()
	cfg.Nodes = 2
	cfg.Sinks = 1
	cfg.TotalTimeS = 8
	cfg.TrafficStartS = 2
	cfg.DataRateBps = 512
	cfg.PacketSizeBytes = 64
	cfg.Path = netem.PathDelayConfig{
		BaseDelayMin: 0.05,
		BaseDelayMax: 0.05,
		JitterMu:     -30,
	}
	cfg.Channel = netem.ChannelConfig{}
	return &cfg
}

func TestCampaign_Run(t *testing.T) {
	dir := t.TempDir()
	c := &Campaign{
		Name:      "pair",
		Protocols: []string{"AODV", "OLSR"},
		OutputDir: dir,
	}

	outcomes, err := c.Run(context.Background(), smallConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	for i, want := range []string{"AODV", "OLSR"} {
		o := outcomes[i]
		if o.Protocol != want {
			t.Errorf("outcome %d protocol = %s, want %s", i, o.Protocol, want)
		}
		if o.CSVPath != filepath.Join(dir, want+"-OUTPUT.csv") {
			t.Errorf("outcome %d csv path = %s", i, o.CSVPath)
		}
		if _, err := os.Stat(o.CSVPath); err != nil {
			t.Errorf("csv for %s missing: %v", want, err)
		}
		if o.Report.PacketsSent == 0 {
			t.Errorf("%s sent no packets", want)
		}
	}
}

func TestCampaign_RunSameSeedSameTraffic(t *testing.T) {
	c := &Campaign{Protocols: []string{"AODV", "DSDV"}, OutputDir: t.TempDir()}
	outcomes, err := c.Run(context.Background(), smallConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Protocol only changes the control plane profile, so the data plane
	// totals must match run to run.
	if outcomes[0].Report.PacketsSent != outcomes[1].Report.PacketsSent {
		t.Errorf("sent differ: %d vs %d",
			outcomes[0].Report.PacketsSent, outcomes[1].Report.PacketsSent)
	}
}

func TestCampaign_RunEmpty(t *testing.T) {
	c := &Campaign{}
	if _, err := c.Run(context.Background(), smallConfig()); err == nil {
		t.Fatal("expected error for empty protocol list")
	}
}

func TestCampaign_Compare(t *testing.T) {
	c := &Campaign{Protocols: []string{"AODV"}, OutputDir: t.TempDir()}
	outcomes, err := c.Run(context.Background(), smallConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	stats, err := Compare(outcomes)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(stats) != 1 || stats[0].Protocol != "AODV" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats[0].Rows == 0 {
		t.Error("no rows loaded from CSV")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaign.yaml")
	body := strings.Join([]string{
		"name: full-sweep",
		"protocols: [AODV, OLSR, DSDV, DSR]",
		"output_dir: results",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Name != "full-sweep" || len(c.Protocols) != 4 || c.OutputDir != "results" {
		t.Errorf("unexpected campaign: %+v", c)
	}
}
