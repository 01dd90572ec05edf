// Package importer orchestrates the import pipeline: format detection,
// parsing, rule-based categorization, persistence and budget alert
// evaluation. The pipeline has two phases. Phase 1 materializes and
// validates the whole input without side effects, so any parse or
// validation error aborts the import with nothing persisted. Phase 2
// inserts the transactions in file order and evaluates alerts per insert;
// a persistence failure stops the rest of the batch but does not roll back
// rows already inserted.
package importer

import (
	"fmt"
	"os"

	"avasile/fintrack/internal/budget"
	"avasile/fintrack/internal/categorizer"
	"avasile/fintrack/internal/importerror"
	"avasile/fintrack/internal/models"
	"avasile/fintrack/internal/parser"
	"avasile/fintrack/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Ledger is the write side of the persistent transaction store.
type Ledger interface {
	InsertTransaction(tx *models.Transaction) error
}

// Result is the outcome of a successful import run.
type Result struct {
	Imported int
	Alerts   []models.BudgetAlert
}

// Coordinator wires the pipeline stages together.
type Coordinator struct {
	limits    validation.Limits
	rules     categorizer.RuleSource
	ledger    Ledger
	evaluator *budget.Evaluator
}

// NewCoordinator returns a coordinator over the given collaborators.
func NewCoordinator(limits validation.Limits, rules categorizer.RuleSource, ledger Ledger, evaluator *budget.Evaluator) *Coordinator {
	return &Coordinator{
		limits:    limits,
		rules:     rules,
		ledger:    ledger,
		evaluator: evaluator,
	}
}

// ImportFile imports a bank export file. The format comes from the
// override when given, otherwise from the file extension. On success it
// returns the number of inserted transactions and every alert raised
// during the run, in insertion order.
func (c *Coordinator) ImportFile(path string, override parser.Type) (Result, error) {
	format, err := parser.Detect(path, override)
	if err != nil {
		return Result{}, err
	}

	p, err := parser.New(format, c.limits)
	if err != nil {
		return Result{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open file '%s': %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close import file")
		}
	}()

	log.WithFields(logrus.Fields{"file": path, "format": format}).Info("Importing transactions")

	// Phase 1: materialize and validate the whole file. Pure; a failure
	// here means nothing was persisted.
	transactions, err := p.Parse(f)
	if err != nil {
		return Result{}, err
	}

	// Rules are loaded once per run; concurrent rule changes during the
	// run are not observed.
	rules, err := categorizer.FromSource(c.rules)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load categorization rules: %w", err)
	}

	// Phase 2: per-record side effects in file order.
	result := Result{}
	for i := range transactions {
		alert, err := c.insert(&transactions[i], rules)
		if err != nil {
			return result, err
		}
		result.Imported++
		if alert != nil {
			result.Alerts = append(result.Alerts, *alert)
		}
	}

	log.WithFields(logrus.Fields{
		"count":  result.Imported,
		"alerts": len(result.Alerts),
	}).Info("Import completed")
	return result, nil
}

// InsertOne runs the single-record case of the pipeline for direct entry:
// validation, categorization when eligible, insertion and alert
// evaluation. The returned transaction carries its freshly assigned id.
func (c *Coordinator) InsertOne(candidate validation.Candidate) (*models.Transaction, *models.BudgetAlert, error) {
	tx, err := c.limits.Validate(candidate)
	if err != nil {
		return nil, nil, err
	}
	tx.ID = uuid.New().String()

	rules, err := categorizer.FromSource(c.rules)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load categorization rules: %w", err)
	}

	alert, err := c.insert(&tx, rules)
	if err != nil {
		return nil, nil, err
	}
	return &tx, alert, nil
}

func (c *Coordinator) insert(tx *models.Transaction, rules *categorizer.Categorizer) (*models.BudgetAlert, error) {
	rules.Apply(tx)

	if err := c.ledger.InsertTransaction(tx); err != nil {
		return nil, &importerror.PersistenceError{Op: "insert", TransactionID: tx.ID, Err: err}
	}

	return c.evaluator.Evaluate(tx)
}
