package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"manetbench/internal/config"
	"manetbench/internal/sim"
)

var (
	runPrintOnly  bool
	runConfigPath string
	runSchemaPath string
	runProtocol   string
	runSeed       int64
	runCSV        string
	runLogFile    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one routing experiment",
	Long:  "run executes a single experiment for one protocol, emitting per-tick statistics to CSV and the configured live backend.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(runConfigPath, runSchemaPath)
		if err != nil {
			return err
		}
		if runProtocol != "" {
			cfg.Protocol = runProtocol
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = runSeed
		}
		if runCSV != "" {
			cfg.CSVFile = runCSV
		}

		writer, reportWriter, cleanup, err := newWriters(cfg, runPrintOnly, runLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		exp, err := sim.NewExperiment(cfg, writer)
		if err != nil {
			return err
		}
		res, err := exp.Run(cmdContext(cmd))
		if err != nil {
			return err
		}

		if reportWriter != nil {
			if err := reportWriter.WriteReport(res.Report); err != nil {
				return err
			}
		}
		fmt.Println(res.Report.String())
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runPrintOnly, "print-only", false, "Print snapshots to STDOUT instead of writing to DB")
	runCmd.Flags().StringVar(&runConfigPath, "config", "config/experiment.yaml", "Path to experiment configuration YAML")
	runCmd.Flags().StringVar(&runSchemaPath, "schema", "schemas/experiment.cue", "Path to CUE schema file")
	runCmd.Flags().StringVar(&runProtocol, "protocol", "", "Override the configured routing protocol")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "Override the configured RNG seed")
	runCmd.Flags().StringVar(&runCSV, "csv", "", "Override the output CSV path")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "Path to export snapshot rows (JSONL)")
}
