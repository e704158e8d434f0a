package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"manetbench/internal/analyze"
	"manetbench/internal/campaign"
	"manetbench/internal/config"
)

var (
	campaignConfigPath string
	campaignSchemaPath string
	campaignFile       string
	campaignOutputDir  string
	campaignSummary    string
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Run a protocol comparison campaign",
	Long:  "campaign runs the configured protocol set back-to-back from a shared base configuration, one CSV per protocol, then prints the comparative statistics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(campaignConfigPath, campaignSchemaPath)
		if err != nil {
			return err
		}

		var c *campaign.Campaign
		if campaignFile != "" {
			c, err = campaign.Load(campaignFile)
			if err != nil {
				return err
			}
		} else {
			c = campaign.FromConfig(cfg)
		}
		if campaignOutputDir != "" {
			c.OutputDir = campaignOutputDir
		}

		outcomes, err := c.Run(cmdContext(cmd), cfg)
		if err != nil {
			return err
		}
		stats, err := campaign.Compare(outcomes)
		if err != nil {
			return err
		}

		fmt.Println(analyze.ComparisonTable(stats))
		fmt.Println(analyze.DetailedReport(stats))
		if campaignSummary != "" {
			return analyze.WriteSummary(campaignSummary, stats)
		}
		return nil
	},
}

func init() {
	campaignCmd.Flags().StringVar(&campaignConfigPath, "config", "config/experiment.yaml", "Path to experiment configuration YAML")
	campaignCmd.Flags().StringVar(&campaignSchemaPath, "schema", "schemas/experiment.cue", "Path to CUE schema file")
	campaignCmd.Flags().StringVar(&campaignFile, "campaign", "", "Path to a campaign definition YAML (defaults to the config's protocol list)")
	campaignCmd.Flags().StringVar(&campaignOutputDir, "output-dir", "", "Directory for per-protocol CSV files")
	campaignCmd.Flags().StringVar(&campaignSummary, "summary", "", "Write the comparison summary to this file")
}
