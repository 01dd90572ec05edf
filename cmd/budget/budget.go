// Package budget handles category budget commands
package budget

import (
	"fmt"
	"os"
	"text/tabwriter"

	"avasile/fintrack/cmd/root"
	"avasile/fintrack/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage category budgets",
	Long: `Manage per-category spending budgets. An alert is raised whenever the
all-time spend of a category exceeds its budget after an insertion.`,
}

var setCmd = &cobra.Command{
	Use:   "set <category> <amount>",
	Short: "Set or replace the budget for a category",
	Args:  cobra.ExactArgs(2),
	Run:   setFunc,
}

var incCmd = &cobra.Command{
	Use:   "inc <category> <amount>",
	Short: "Increase an existing budget",
	Args:  cobra.ExactArgs(2),
	Run:   incFunc,
}

var decCmd = &cobra.Command{
	Use:   "dec <category> <amount>",
	Short: "Decrease an existing budget",
	Long:  `Decrease an existing budget. The budget cannot go below zero.`,
	Args:  cobra.ExactArgs(2),
	Run:   decFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all budgets",
	Run:   listFunc,
}

var delCmd = &cobra.Command{
	Use:   "del <category>",
	Short: "Delete the budget for a category",
	Args:  cobra.ExactArgs(1),
	Run:   delFunc,
}

func init() {
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(incCmd)
	Cmd.AddCommand(decCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(delCmd)
}

func openStore() *store.Store {
	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening database: %v", err)
	}
	return s
}

func closeStore(s *store.Store) {
	if err := s.Close(); err != nil {
		root.Log.Warnf("Failed to close database: %v", err)
	}
}

func parseAmount(raw string) decimal.Decimal {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		root.Log.Fatalf("Invalid amount %q", raw)
	}
	if amount.IsNegative() {
		root.Log.Fatalf("Amount must not be negative, got %s", amount)
	}
	return amount
}

func setFunc(cmd *cobra.Command, args []string) {
	category, amount := args[0], parseAmount(args[1])

	s := openStore()
	defer closeStore(s)

	if err := s.SetBudget(category, amount); err != nil {
		root.Log.Fatalf("Error setting budget: %v", err)
	}
	fmt.Printf("Budget for %s set to %s\n", category, amount)
}

func incFunc(cmd *cobra.Command, args []string) {
	category, delta := args[0], parseAmount(args[1])

	s := openStore()
	defer closeStore(s)

	current, ok, err := s.Budget(category)
	if err != nil {
		root.Log.Fatalf("Error reading budget: %v", err)
	}
	if !ok {
		root.Log.Fatalf("No budget set for category '%s'", category)
	}

	updated := current.Add(delta)
	if err := s.SetBudget(category, updated); err != nil {
		root.Log.Fatalf("Error updating budget: %v", err)
	}
	fmt.Printf("Budget for %s increased to %s\n", category, updated)
}

func decFunc(cmd *cobra.Command, args []string) {
	category, delta := args[0], parseAmount(args[1])

	s := openStore()
	defer closeStore(s)

	current, ok, err := s.Budget(category)
	if err != nil {
		root.Log.Fatalf("Error reading budget: %v", err)
	}
	if !ok {
		root.Log.Fatalf("No budget set for category '%s'", category)
	}

	updated := current.Sub(delta)
	if updated.IsNegative() {
		root.Log.Fatalf("Budget for %s is %s, cannot decrease by %s", category, current, delta)
	}
	if err := s.SetBudget(category, updated); err != nil {
		root.Log.Fatalf("Error updating budget: %v", err)
	}
	fmt.Printf("Budget for %s decreased to %s\n", category, updated)
}

func listFunc(cmd *cobra.Command, args []string) {
	s := openStore()
	defer closeStore(s)

	budgets, err := s.Budgets()
	if err != nil {
		root.Log.Fatalf("Error listing budgets: %v", err)
	}
	if len(budgets) == 0 {
		fmt.Println("No budgets defined")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tBUDGET")
	for _, b := range budgets {
		fmt.Fprintf(w, "%s\t%s\n", b.Category, b.Amount)
	}
	if err := w.Flush(); err != nil {
		root.Log.Warnf("Failed to flush output: %v", err)
	}
}

func delFunc(cmd *cobra.Command, args []string) {
	s := openStore()
	defer closeStore(s)

	if err := s.DeleteBudget(args[0]); err != nil {
		root.Log.Fatalf("Error deleting budget: %v", err)
	}
	fmt.Printf("Deleted budget for %s\n", args[0])
}
