// Package models provides the data structures shared by the parsers,
// the categorization engine, the budget evaluator and the store.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the canonical calendar date layout used across the
// application: parsers accept it, the store persists it, commands print it.
const DateFormat = "2006-01-02"

// CategoryUncategorized is the placeholder assigned to transactions with no
// known category. Transactions carrying it remain eligible for rule-based
// categorization; any other value is treated as an explicit user choice.
const CategoryUncategorized = "Uncategorized"

// Kind is the direction of a transaction.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind parses a kind literal. Input casing is not significant;
// the canonical stored form is lowercase.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(KindIncome):
		return KindIncome, nil
	case string(KindExpense):
		return KindExpense, nil
	default:
		return "", fmt.Errorf("invalid transaction kind %q: use 'income' or 'expense'", s)
	}
}

// Transaction is a normalized financial transaction. The Amount is always a
// non-negative magnitude; direction lives exclusively in Kind. Parsers
// convert signed external representations at the boundary.
type Transaction struct {
	ID          string          `gorm:"primaryKey"`
	Date        time.Time       `gorm:"not null"`
	Description string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:TEXT;not null"`
	Kind        Kind            `gorm:"type:TEXT;not null"`
	Category    string          `gorm:"not null"`
}

// IsExpense reports whether the transaction is an expense.
func (t *Transaction) IsExpense() bool {
	return t.Kind == KindExpense
}

// NeedsCategorization reports whether the transaction is eligible for
// rule-based category resolution. An explicit category always wins.
func (t *Transaction) NeedsCategorization() bool {
	return t.Category == "" || t.Category == CategoryUncategorized
}

// CategoryRule maps a regular expression over transaction descriptions to a
// category. Rules are evaluated in ascending ID order; the first match wins.
type CategoryRule struct {
	ID       uint   `gorm:"primaryKey"`
	Pattern  string `gorm:"not null"`
	Category string `gorm:"not null"`
}

// CategoryBudget is a spending threshold for a single category. At most one
// budget exists per category; setting it again replaces the amount.
type CategoryBudget struct {
	Category string          `gorm:"primaryKey"`
	Amount   decimal.Decimal `gorm:"type:TEXT;not null"`
}

// BudgetAlert is one entry of the append-only alert log. Alerts are never
// mutated or deduplicated: every breaching insertion appends a new one.
type BudgetAlert struct {
	ID        uint   `gorm:"primaryKey"`
	Category  string `gorm:"not null"`
	Message   string `gorm:"not null"`
	CreatedAt time.Time
}

// AlertMessage renders the fixed alert message template.
func AlertMessage(category string, threshold, spent decimal.Decimal) string {
	return fmt.Sprintf("[%s] Budget exceeded for category '%s': budget %s, spent %s",
		category, category, threshold.String(), spent.String())
}
