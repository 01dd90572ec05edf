// Package tx handles manual transaction commands
package tx

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"avasile/fintrack/cmd/root"
	"avasile/fintrack/internal/models"
	"avasile/fintrack/internal/store"
	"avasile/fintrack/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the tx command
var Cmd = &cobra.Command{
	Use:   "tx",
	Short: "Manage individual transactions",
	Long:  `Add, remove, list and search transactions in the ledger.`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a single transaction",
	Long: `Add a single transaction to the ledger. Transactions without an
explicit category are matched against the categorization rules, and budget
alerts are evaluated after insertion.`,
	Run: addFunc,
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a transaction by id",
	Args:  cobra.ExactArgs(1),
	Run:   removeFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all transactions, most recent first",
	Run:   listFunc,
}

var searchCmd = &cobra.Command{
	Use:   "search <category>",
	Short: "List transactions in a category",
	Long:  `List transactions whose category matches, ignoring case.`,
	Args:  cobra.ExactArgs(1),
	Run:   searchFunc,
}

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "List expenses in a date range",
	Long:  `List expenses dated within the inclusive --from/--to range, oldest first.`,
	Run:   expensesFunc,
}

func init() {
	addCmd.Flags().StringVarP(&root.Date, "date", "t", "", "Transaction date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&root.Description, "description", "m", "", "Transaction description")
	addCmd.Flags().StringVarP(&root.Amount, "amount", "a", "", "Transaction amount")
	addCmd.Flags().StringVarP(&root.Kind, "kind", "k", "", "Transaction kind (income or expense)")
	addCmd.Flags().StringVarP(&root.Category, "category", "c", "", "Category (optional; rules apply when omitted)")
	_ = addCmd.MarkFlagRequired("date")
	_ = addCmd.MarkFlagRequired("description")
	_ = addCmd.MarkFlagRequired("amount")
	_ = addCmd.MarkFlagRequired("kind")

	expensesCmd.Flags().StringVar(&root.From, "from", "", "Start date (YYYY-MM-DD)")
	expensesCmd.Flags().StringVar(&root.To, "to", "", "End date (YYYY-MM-DD)")
	_ = expensesCmd.MarkFlagRequired("from")
	_ = expensesCmd.MarkFlagRequired("to")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(searchCmd)
	Cmd.AddCommand(expensesCmd)
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

func addFunc(cmd *cobra.Command, args []string) {
	s := openStore()
	defer closeStore(s)

	tx, alert, err := root.NewCoordinator(s).InsertOne(validation.Candidate{
		Date:        root.Date,
		Description: root.Description,
		Amount:      root.Amount,
		Kind:        root.Kind,
		Category:    root.Category,
	})
	if err != nil {
		root.Log.Fatalf("Error adding transaction: %v", err)
	}

	fmt.Printf("Added transaction %s (%s, category %s)\n", tx.ID, tx.Amount, tx.Category)
	if alert != nil {
		fmt.Println(alert.Message)
	}
}

func removeFunc(cmd *cobra.Command, args []string) {
	s := openStore()
	defer closeStore(s)

	if err := s.RemoveTransaction(args[0]); err != nil {
		root.Log.Fatalf("Error removing transaction: %v", err)
	}
	fmt.Printf("Removed transaction %s\n", args[0])
}

func listFunc(cmd *cobra.Command, args []string) {
	s := openStore()
	defer closeStore(s)

	transactions, err := s.Transactions()
	if err != nil {
		root.Log.Fatalf("Error listing transactions: %v", err)
	}
	printTransactions(transactions)
}

func searchFunc(cmd *cobra.Command, args []string) {
	s := openStore()
	defer closeStore(s)

	transactions, err := s.SearchByCategory(args[0])
	if err != nil {
		root.Log.Fatalf("Error searching transactions: %v", err)
	}
	printTransactions(transactions)
}

func expensesFunc(cmd *cobra.Command, args []string) {
	from, err := time.Parse(models.DateFormat, root.From)
	if err != nil {
		root.Log.Fatalf("Invalid --from date %q (want YYYY-MM-DD)", root.From)
	}
	to, err := time.Parse(models.DateFormat, root.To)
	if err != nil {
		root.Log.Fatalf("Invalid --to date %q (want YYYY-MM-DD)", root.To)
	}

	s := openStore()
	defer closeStore(s)

	transactions, err := s.ExpensesBetween(from, to)
	if err != nil {
		root.Log.Fatalf("Error listing expenses: %v", err)
	}
	printTransactions(transactions)
}

func printTransactions(transactions []models.Transaction) {
	if len(transactions) == 0 {
		fmt.Println("No transactions found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tAMOUNT\tKIND\tCATEGORY")
	for _, tx := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date.Format(models.DateFormat), tx.Description, tx.Amount, tx.Kind, tx.Category)
	}
	if err := w.Flush(); err != nil {
		root.Log.Warnf("Failed to flush output: %v", err)
	}
}
