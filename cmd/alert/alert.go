// Package alert handles budget alert commands
package alert

import (
	"fmt"

	"avasile/fintrack/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the alert command
var Cmd = &cobra.Command{
	Use:   "alert",
	Short: "Inspect budget alerts",
	Long:  `Inspect the append-only log of budget alerts.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List alerts, most recent first",
	Run:   listFunc,
}

func init() {
	Cmd.AddCommand(listCmd)
}

func listFunc(cmd *cobra.Command, args []string) {
	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening database: %v", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			root.Log.Warnf("Failed to close database: %v", err)
		}
	}()

	alerts, err := s.Alerts()
	if err != nil {
		root.Log.Fatalf("Error listing alerts: %v", err)
	}
	if len(alerts) == 0 {
		fmt.Println("No alerts recorded")
		return
	}
	for _, a := range alerts {
		fmt.Println(a.Message)
	}
}
