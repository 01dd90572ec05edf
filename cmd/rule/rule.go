// Package rule handles categorization rule commands
package rule

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"text/tabwriter"

	"avasile/fintrack/cmd/root"
	"avasile/fintrack/internal/rulefile"
	"avasile/fintrack/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the rule command
var Cmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage categorization rules",
	Long: `Manage the regex rules used to categorize imported transactions.
Rules are matched against transaction descriptions in ascending id order;
the first match wins.`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a categorization rule",
	Run:   addFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List rules in match order",
	Run:   listFunc,
}

var delCmd = &cobra.Command{
	Use:   "del <id>",
	Short: "Delete a rule by id",
	Args:  cobra.ExactArgs(1),
	Run:   delFunc,
}

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load rules from a YAML file",
	Long:  `Load rule seeds from a YAML file and append them to the rule table.`,
	Args:  cobra.ExactArgs(1),
	Run:   loadFunc,
}

func init() {
	addCmd.Flags().StringVarP(&root.Pattern, "pattern", "p", "", "Regex matched against descriptions")
	addCmd.Flags().StringVarP(&root.Category, "category", "c", "", "Category assigned on match")
	_ = addCmd.MarkFlagRequired("pattern")
	_ = addCmd.MarkFlagRequired("category")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(delCmd)
	Cmd.AddCommand(loadCmd)
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
	if _, err := regexp.Compile(root.Pattern); err != nil {
		root.Log.Fatalf("Invalid pattern %q: %v", root.Pattern, err)
	}

	s := openStore()
	defer closeStore(s)

	rule, err := s.AddRule(root.Pattern, root.Category)
	if err != nil {
		root.Log.Fatalf("Error adding rule: %v", err)
	}
	fmt.Printf("Added rule %d: %s -> %s\n", rule.ID, rule.Pattern, rule.Category)
}

func listFunc(cmd *cobra.Command, args []string) {
	s := openStore()
	defer closeStore(s)

	rules, err := s.Rules()
	if err != nil {
		root.Log.Fatalf("Error listing rules: %v", err)
	}
	if len(rules) == 0 {
		fmt.Println("No rules defined")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPATTERN\tCATEGORY")
	for _, r := range rules {
		fmt.Fprintf(w, "%d\t%s\t%s\n", r.ID, r.Pattern, r.Category)
	}
	if err := w.Flush(); err != nil {
		root.Log.Warnf("Failed to flush output: %v", err)
	}
}

func delFunc(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		root.Log.Fatalf("Invalid rule id %q", args[0])
	}

	s := openStore()
	defer closeStore(s)

	if err := s.DeleteRule(uint(id)); err != nil {
		root.Log.Fatalf("Error deleting rule: %v", err)
	}
	fmt.Printf("Deleted rule %d\n", id)
}

func loadFunc(cmd *cobra.Command, args []string) {
	seeds, err := rulefile.Load(args[0])
	if err != nil {
		root.Log.Fatalf("Error loading rule file: %v", err)
	}

	s := openStore()
	defer closeStore(s)

	for _, seed := range seeds {
		if _, err := s.AddRule(seed.Pattern, seed.Category); err != nil {
			root.Log.Fatalf("Error adding rule %q: %v", seed.Pattern, err)
		}
	}
	fmt.Printf("Loaded %d rules from %s\n", len(seeds), args[0])
}
