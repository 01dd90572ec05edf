// Package export handles the ledger export command
package export

import (
	"fmt"
	"os"

	"avasile/fintrack/cmd/root"
	"avasile/fintrack/internal/export"

	"github.com/spf13/cobra"
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger as CSV",
	Long: `Export all stored transactions as CSV, to a file given with --output
or to standard output.`,
	Run: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Output, "output", "o", "", "Output file (default: stdout)")
	Cmd.Flags().BoolVar(&root.NoHeaders, "no-headers", false, "Omit the header row")
}

func exportFunc(cmd *cobra.Command, args []string) {
	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening database: %v", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			root.Log.Warnf("Failed to close database: %v", err)
		}
	}()

	transactions, err := s.Transactions()
	if err != nil {
		root.Log.Fatalf("Error reading transactions: %v", err)
	}

	withHeaders := !root.NoHeaders
	if root.Cfg != nil && !root.Cfg.Export.IncludeHeaders {
		withHeaders = false
	}

	if root.Output == "" {
		if err := export.Write(os.Stdout, transactions, withHeaders); err != nil {
			root.Log.Fatalf("Error exporting transactions: %v", err)
		}
		return
	}

	if err := export.WriteFile(root.Output, transactions, withHeaders); err != nil {
		root.Log.Fatalf("Error exporting transactions: %v", err)
	}
	fmt.Printf("Exported %d transactions to %s\n", len(transactions), root.Output)
}
