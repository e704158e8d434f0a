package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"manetbench/internal/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "manetbench",
	Short: "MANET routing protocol benchmark harness",
	Long:  "manetbench runs instrumented traffic experiments over simulated ad-hoc links and aggregates per-tick routing statistics.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cmdContext returns the command context with a configured logger attached.
func cmdContext(cmd *cobra.Command) context.Context {
	return logging.NewContext(cmd.Context(), logging.New(verbose))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(campaignCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(grafanaCmd)
}
