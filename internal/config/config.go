// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"manetbench/internal/netem"
)

// ExperimentConfig is the root configuration for one routing experiment run.
// Node speed and pause time are recorded in the output for comparability but
// mobility itself is not modeled here.
type ExperimentConfig struct {
	Protocol               string  `yaml:"protocol"`
	Nodes                  int     `yaml:"nodes"`
	Sinks                  int     `yaml:"sinks"`
	TxPowerDbm             float64 `yaml:"tx_power_dbm"`
	TotalTimeS             float64 `yaml:"total_time_s"`
	DataRateBps            float64 `yaml:"data_rate_bps"`
	PacketSizeBytes        int     `yaml:"packet_size_bytes"`
	NodeSpeedMps           float64 `yaml:"node_speed_mps"`
	PauseTimeS             float64 `yaml:"pause_time_s"`
	TrafficStartS          float64 `yaml:"traffic_start_s"`
	OverheadThresholdBytes int     `yaml:"overhead_threshold_bytes"`
	Seed                   int64   `yaml:"seed"`
	CSVFile                string  `yaml:"csv_file"`

	Path    netem.PathDelayConfig `yaml:"path"`
	Channel netem.ChannelConfig   `yaml:"channel"`
	Control netem.ControlConfig   `yaml:"control"`

	// Campaign lists the protocols compared by the campaign command.
	Campaign []string `yaml:"campaign"`
}

// Default returns the configuration matching the reference experiment setup.
func Default() ExperimentConfig {
	return ExperimentConfig{
		Protocol:               "AODV",
		Nodes:                  25,
		Sinks:                  5,
		TxPowerDbm:             25.0,
		TotalTimeS:             200.0,
		DataRateBps:            2048,
		PacketSizeBytes:        64,
		NodeSpeedMps:           2.0,
		PauseTimeS:             5.0,
		TrafficStartS:          30.0,
		OverheadThresholdBytes: 200,
		Seed:                   1,
		Path:                   netem.DefaultPathDelayConfig(),
		Campaign:               []string{"AODV", "OLSR", "DSDV", "DSR"},
	}
}

// Load reads YAML config over the defaults and validates it, first against
// the CUE schema and then structurally.
func Load(configPath, cueSchemaPath string) (*ExperimentConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the startup invariants. Any error here is fatal for the
// run: a misconfigured topology or rate would silently skew every metric.
func (c *ExperimentConfig) Validate() error {
	if c.Sinks < 0 {
		return fmt.Errorf("config: sinks must be >= 0, got %d", c.Sinks)
	}
	if 2*c.Sinks > c.Nodes {
		return fmt.Errorf("config: sinks*2 (%d) must be <= nodes (%d)", 2*c.Sinks, c.Nodes)
	}
	if c.DataRateBps <= 0 {
		return fmt.Errorf("config: data_rate_bps must be positive, got %v", c.DataRateBps)
	}
	if c.PacketSizeBytes <= 0 {
		return fmt.Errorf("config: packet_size_bytes must be positive, got %d", c.PacketSizeBytes)
	}
	if c.TotalTimeS <= c.TrafficStartS {
		return fmt.Errorf("config: total_time_s (%v) must exceed traffic_start_s (%v)", c.TotalTimeS, c.TrafficStartS)
	}
	switch c.Protocol {
	case "AODV", "OLSR", "DSDV", "DSR":
	default:
		return fmt.Errorf("config: unknown protocol %q", c.Protocol)
	}
	return nil
}

// PacketsPerSecond derives the send rate from the configured data rate.
func (c *ExperimentConfig) PacketsPerSecond() float64 {
	return c.DataRateBps / (float64(c.PacketSizeBytes) * 8.0)
}

// SendInterval is the virtual-time spacing between sends on one flow.
func (c *ExperimentConfig) SendInterval() float64 {
	return 1.0 / c.PacketsPerSecond()
}

// PacketsPerFlow is the quota for each flow, covering the traffic window.
func (c *ExperimentConfig) PacketsPerFlow() int {
	return int((c.TotalTimeS - c.TrafficStartS) * c.PacketsPerSecond())
}

// OutputCSV resolves the time-series filename, defaulting to the
// <PROTOCOL>-OUTPUT.csv convention.
func (c *ExperimentConfig) OutputCSV() string {
	if c.CSVFile != "" {
		return c.CSVFile
	}
	return c.Protocol + "-OUTPUT.csv"
}
