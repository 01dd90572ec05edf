// Package importcmd handles the bank export import command
package importcmd

import (
	"fmt"

	"avasile/fintrack/cmd/root"
	"avasile/fintrack/internal/parser"

	"github.com/spf13/cobra"
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a bank export file",
	Long: `Import transactions from a bank export file into the ledger.
The format is detected from the file extension (.csv or .ofx) unless
overridden with --format.`,
	Args: cobra.ExactArgs(1),
	Run:  importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Format, "format", "f", "", "Import format override (csv or ofx)")
}

func importFunc(cmd *cobra.Command, args []string) {
	path := args[0]

	var override parser.Type
	if root.Format != "" {
		t, err := parser.ParseType(root.Format)
		if err != nil {
			root.Log.Fatalf("Error: %v", err)
		}
		override = t
	}

	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening database: %v", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			root.Log.Warnf("Failed to close database: %v", err)
		}
	}()

	result, err := root.NewCoordinator(s).ImportFile(path, override)
	if err != nil {
		root.Log.Fatalf("Import failed: %v", err)
	}

	fmt.Printf("Imported %d transactions from %s\n", result.Imported, path)
	for _, alert := range result.Alerts {
		fmt.Println(alert.Message)
	}
}
