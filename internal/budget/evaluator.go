// Package budget evaluates spending thresholds after expense insertions
// and records alerts to an append-only log.
package budget

import (
	"avasile/fintrack/internal/importerror"
	"avasile/fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// BudgetSource supplies the configured threshold for a category. The
// second return value reports whether a budget is configured at all.
type BudgetSource interface {
	Budget(category string) (decimal.Decimal, bool, error)
}

// Ledger supplies the all-time expense total for a category as an exact
// decimal sum of stored magnitudes.
type Ledger interface {
	SumExpenses(category string) (decimal.Decimal, error)
}

// AlertSink persists alerts.
type AlertSink interface {
	RecordAlert(alert *models.BudgetAlert) error
}

// Evaluator decides whether an inserted expense breached its category
// budget.
type Evaluator struct {
	budgets BudgetSource
	ledger  Ledger
	alerts  AlertSink
}

// NewEvaluator wires an evaluator to its collaborators.
func NewEvaluator(budgets BudgetSource, ledger Ledger, alerts AlertSink) *Evaluator {
	return &Evaluator{budgets: budgets, ledger: ledger, alerts: alerts}
}

// Evaluate runs once per durably inserted transaction. Income never
// triggers evaluation. Without a configured budget no aggregation is
// performed at all. When the all-time category spend strictly exceeds the
// threshold, a new alert is persisted and returned: the alert log is
// append-only, so repeat breaches of the same category keep producing
// fresh alerts.
func (e *Evaluator) Evaluate(tx *models.Transaction) (*models.BudgetAlert, error) {
	if !tx.IsExpense() {
		return nil, nil
	}

	threshold, ok, err := e.budgets.Budget(tx.Category)
	if err != nil {
		return nil, &importerror.BudgetLookupError{Category: tx.Category, Err: err}
	}
	if !ok {
		return nil, nil
	}

	total, err := e.ledger.SumExpenses(tx.Category)
	if err != nil {
		return nil, &importerror.BudgetLookupError{Category: tx.Category, Err: err}
	}

	if !total.GreaterThan(threshold) {
		return nil, nil
	}

	alert := &models.BudgetAlert{
		Category: tx.Category,
		Message:  models.AlertMessage(tx.Category, threshold, total),
	}
	if err := e.alerts.RecordAlert(alert); err != nil {
		return nil, &importerror.PersistenceError{Op: "record alert", TransactionID: tx.ID, Err: err}
	}

	log.WithFields(logrus.Fields{
		"category": tx.Category,
		"budget":   threshold.String(),
		"spent":    total.String(),
	}).Warn("Budget exceeded")
	return alert, nil
}
