package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fxtae/journal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <trades|statement>",
	Short: "Export journal data as CSV",
	Long: `Export the trade log or the combined deposit/withdrawal statement as CSV.

Examples:
  fxjournal export trades -o trades.csv
  fxjournal export statement -o statement.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var exportOut string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	l, _, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch args[0] {
	case "trades":
		return export.WriteTrades(out, l.Trades())
	case "statement":
		return export.WriteStatement(out, l.CombinedHistory())
	default:
		return fmt.Errorf("unknown export %q, want 'trades' or 'statement'", args[0])
	}
}
