// Package root contains the root command for the application
package root

import (
	"avasile/fintrack/internal/budget"
	"avasile/fintrack/internal/categorizer"
	"avasile/fintrack/internal/config"
	"avasile/fintrack/internal/csvparser"
	"avasile/fintrack/internal/export"
	"avasile/fintrack/internal/importer"
	"avasile/fintrack/internal/ofxparser"
	"avasile/fintrack/internal/rulefile"
	"avasile/fintrack/internal/store"
	"avasile/fintrack/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fintrack",
		Short: "A CLI tool to import bank exports, categorize transactions and track budgets.",
		Long: `fintrack imports bank export files (CSV and OFX) into a local ledger,
categorizes transactions with regex rules and raises alerts when category
budgets are exceeded.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to fintrack!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize configuration and logging
			config.LoadEnv()
			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Set the configured logger for all internal packages
			csvparser.SetLogger(Log)
			ofxparser.SetLogger(Log)
			categorizer.SetLogger(Log)
			budget.SetLogger(Log)
			importer.SetLogger(Log)
			store.SetLogger(Log)
			export.SetLogger(Log)
			rulefile.SetLogger(Log)
		},
	}

	// DatabasePath overrides the configured database location when set
	DatabasePath string

	// Format is the explicit import format override
	Format string

	// Output is the destination file for export
	Output string

	// NoHeaders suppresses the header row on export
	NoHeaders bool

	// Transaction entry flags
	Date        string
	Description string
	Amount      string
	Kind        string
	Category    string

	// Rule entry flags
	Pattern string

	// Date range flags
	From string
	To   string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&DatabasePath, "database", "d", "", "Database file (overrides configuration)")
}

// Limits returns the validation bounds from the loaded configuration.
func Limits() validation.Limits {
	if Cfg == nil {
		return validation.DefaultLimits()
	}
	return validation.Limits{
		MaxDescriptionLen: Cfg.Validation.MaxDescriptionLen,
		MaxCategoryLen:    Cfg.Validation.MaxCategoryLen,
	}
}

// OpenStore opens the configured database.
func OpenStore() (*store.Store, error) {
	path := DatabasePath
	if path == "" && Cfg != nil {
		path = Cfg.Database.Path
	}
	if path == "" {
		path = "fintrack.db"
	}
	return store.Open(path)
}

// NewCoordinator wires the import pipeline over the given store.
func NewCoordinator(s *store.Store) *importer.Coordinator {
	evaluator := budget.NewEvaluator(s, s, s)
	return importer.NewCoordinator(Limits(), s, s, evaluator)
}
