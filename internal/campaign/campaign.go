// Campaigns run the same experiment across a set of routing protocols.
package campaign

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"manetbench/internal/analyze"
	"manetbench/internal/config"
	"manetbench/internal/logging"
	"manetbench/internal/metrics"
	"manetbench/internal/sim"
)

// Campaign defines an ordered protocol comparison sharing one base
// configuration. Each protocol gets its own CSV so result sets line up with
// single runs.
type Campaign struct {
	Name        string   `yaml:"name,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Protocols   []string `yaml:"protocols"`
	OutputDir   string   `yaml:"output_dir,omitempty"`
}

// Outcome is the record of one finished campaign run.
type Outcome struct {
	Protocol string
	CSVPath  string
	Report   metrics.FinalReport
}

// Load reads a YAML campaign definition from disk.
func Load(path string) (*Campaign, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read campaign: %w", err)
	}
	var c Campaign
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse campaign: %w", err)
	}
	return &c, nil
}

// FromConfig derives a campaign from the protocol list in the experiment
// configuration.
func FromConfig(cfg *config.ExperimentConfig) *Campaign {
	return &Campaign{Name: "config-campaign", Protocols: cfg.Campaign}
}

// Run executes one experiment per protocol, all from the same base
// configuration and seed, and returns the outcomes in order.
func (c *Campaign) Run(ctx context.Context, base *config.ExperimentConfig) ([]Outcome, error) {
	log := logging.FromContext(ctx)
	if len(c.Protocols) == 0 {
		return nil, fmt.Errorf("campaign: no protocols configured")
	}
	if c.OutputDir != "" {
		if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
			return nil, err
		}
	}

	var outcomes []Outcome
	for _, protocol := range c.Protocols {
		cfg := *base
		cfg.Protocol = protocol
		cfg.CSVFile = filepath.Join(c.OutputDir, protocol+"-OUTPUT.csv")

		writer, err := sim.NewCSVWriter(cfg.CSVFile)
		if err != nil {
			return outcomes, fmt.Errorf("campaign: %s: %w", protocol, err)
		}

		exp, err := sim.NewExperiment(&cfg, writer)
		if err != nil {
			writer.Close()
			return outcomes, fmt.Errorf("campaign: %s: %w", protocol, err)
		}
		res, err := exp.Run(ctx)
		if cerr := writer.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			return outcomes, fmt.Errorf("campaign: %s: %w", protocol, err)
		}

		log.Info("campaign run finished", "protocol", protocol, "csv", cfg.CSVFile, "pdr", res.Report.PDR)
		outcomes = append(outcomes, Outcome{Protocol: protocol, CSVPath: cfg.CSVFile, Report: res.Report})
	}
	return outcomes, nil
}

// Compare loads every outcome's CSV back and computes the cross-protocol
// statistics.
func Compare(outcomes []Outcome) ([]analyze.ProtocolStats, error) {
	var stats []analyze.ProtocolStats
	for _, o := range outcomes {
		rows, err := analyze.LoadCSV(o.CSVPath)
		if err != nil {
			return nil, err
		}
		stats = append(stats, analyze.Compute(o.Protocol, rows))
	}
	return stats, nil
}
