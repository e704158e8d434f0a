package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"manetbench/internal/analyze"
	"manetbench/internal/logging"
)

var (
	analyzeDir       string
	analyzeProtocols []string
	analyzeSummary   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze existing result CSVs",
	Long:  "analyze loads per-protocol result CSVs from a directory and prints comparative statistics without rerunning any experiment.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.FromContext(cmdContext(cmd))

		var stats []analyze.ProtocolStats
		for _, protocol := range analyzeProtocols {
			st, err := analyze.LoadProtocol(analyzeDir, protocol)
			if err != nil {
				if os.IsNotExist(err) {
					log.Warn("no results for protocol, skipping", "protocol", protocol)
					continue
				}
				return err
			}
			stats = append(stats, st)
		}
		if len(stats) == 0 {
			return fmt.Errorf("no result files found in %s", analyzeDir)
		}

		fmt.Println(analyze.ComparisonTable(stats))
		fmt.Println(analyze.DetailedReport(stats))
		if analyzeSummary != "" {
			return analyze.WriteSummary(analyzeSummary, stats)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDir, "dir", ".", "Directory containing <PROTOCOL>-OUTPUT.csv files")
	analyzeCmd.Flags().StringSliceVar(&analyzeProtocols, "protocols", []string{"AODV", "OLSR", "DSDV", "DSR"}, "Protocols to include")
	analyzeCmd.Flags().StringVar(&analyzeSummary, "summary", "", "Write the comparison summary to this file")
}
