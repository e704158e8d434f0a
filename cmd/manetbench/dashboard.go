package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"manetbench/internal/analyze"
	"manetbench/internal/dashboard"
)

var dashboardCSV string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Browse a result CSV interactively",
	Long:  "dashboard opens a terminal UI over a result CSV: a scrollable table of per-tick samples plus the run summary.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("dashboard requires an interactive terminal")
		}
		rows, err := analyze.LoadCSV(dashboardCSV)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("%s contains no samples", dashboardCSV)
		}
		return dashboard.RunTUI(rows[0].Protocol, rows)
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardCSV, "csv", "AODV-OUTPUT.csv", "Path to a result CSV file")
}
