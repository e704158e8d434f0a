package main

import (
	"github.com/spf13/cobra"

	"manetbench/internal/dashboard"
)

var grafanaOutDir string

var grafanaCmd = &cobra.Command{
	Use:   "grafana",
	Short: "Render the Grafana dashboard",
	Long:  "grafana renders the dashboard template against the configured GreptimeDB datasource and writes the result JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboard.Render(grafanaOutDir)
	},
}

func init() {
	grafanaCmd.Flags().StringVar(&grafanaOutDir, "out", "build", "Output directory for rendered dashboards")
}
