// Package store persists transactions, categorization rules, budgets and
// alerts in a SQLite database. Amounts are stored as TEXT and summed in
// Go so decimal values round-trip exactly.
package store

import (
	"errors"
	"fmt"
	"time"

	"avasile/fintrack/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log = l
	}
}

// ErrNotFound is returned when a lookup by identifier matches nothing.
var ErrNotFound = errors.New("record not found")

// Store wraps the database handle.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the database at path and migrates the
// schema. Use ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database '%s': %w", path, err)
	}

	err = db.AutoMigrate(
		&models.Transaction{},
		&models.CategoryRule{},
		&models.CategoryBudget{},
		&models.BudgetAlert{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}

	log.WithField("path", path).Debug("Database opened")
	return &Store{db: db}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InsertTransaction persists a single transaction.
func (s *Store) InsertTransaction(tx *models.Transaction) error {
	return s.db.Create(tx).Error
}

// Transactions returns all transactions, most recent date first.
func (s *Store) Transactions() ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.Order("date DESC").Find(&transactions).Error
	return transactions, err
}

// RemoveTransaction deletes a transaction by id. Deleting an unknown id
// returns ErrNotFound.
func (s *Store) RemoveTransaction(id string) error {
	res := s.db.Delete(&models.Transaction{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("transaction '%s': %w", id, ErrNotFound)
	}
	return nil
}

// SearchByCategory returns transactions whose category matches
// case-insensitively, most recent date first.
func (s *Store) SearchByCategory(category string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.
		Where("LOWER(category) = LOWER(?)", category).
		Order("date DESC").
		Find(&transactions).Error
	return transactions, err
}

// ExpensesBetween returns the expenses dated within [from, to] inclusive,
// in ascending date order.
func (s *Store) ExpensesBetween(from, to time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.
		Where("kind = ? AND date >= ? AND date <= ?", models.KindExpense, from, to).
		Order("date ASC").
		Find(&transactions).Error
	return transactions, err
}

// SumExpenses returns the exact all-time expense total for a category.
// Amounts are summed in Go rather than in SQL, which would coerce the TEXT
// column to floating point.
func (s *Store) SumExpenses(category string) (decimal.Decimal, error) {
	var amounts []string
	err := s.db.Model(&models.Transaction{}).
		Where("kind = ? AND LOWER(category) = LOWER(?)", models.KindExpense, category).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, a := range amounts {
		d, err := decimal.NewFromString(a)
		if err != nil {
			return decimal.Zero, fmt.Errorf("stored amount '%s' is not a decimal: %w", a, err)
		}
		total = total.Add(d.Abs())
	}
	return total, nil
}

// Rules returns the categorization rules ordered by ascending id, the
// order they are matched in.
func (s *Store) Rules() ([]models.CategoryRule, error) {
	var rules []models.CategoryRule
	err := s.db.Order("id ASC").Find(&rules).Error
	return rules, err
}

// AddRule persists a new rule and returns it with its assigned id.
func (s *Store) AddRule(pattern, category string) (models.CategoryRule, error) {
	rule := models.CategoryRule{Pattern: pattern, Category: category}
	err := s.db.Create(&rule).Error
	return rule, err
}

// DeleteRule removes a rule by id. Deleting an unknown id returns
// ErrNotFound.
func (s *Store) DeleteRule(id uint) error {
	res := s.db.Delete(&models.CategoryRule{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("rule %d: %w", id, ErrNotFound)
	}
	return nil
}

// Budget returns the configured threshold for a category. The second
// return value reports whether a budget exists.
func (s *Store) Budget(category string) (decimal.Decimal, bool, error) {
	var budget models.CategoryBudget
	err := s.db.Where("LOWER(category) = LOWER(?)", category).First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	return budget.Amount, true, nil
}

// SetBudget creates or replaces the budget for a category.
func (s *Store) SetBudget(category string, amount decimal.Decimal) error {
	budget := models.CategoryBudget{Category: category, Amount: amount}
	return s.db.Save(&budget).Error
}

// Budgets returns every configured budget ordered by category.
func (s *Store) Budgets() ([]models.CategoryBudget, error) {
	var budgets []models.CategoryBudget
	err := s.db.Order("category ASC").Find(&budgets).Error
	return budgets, err
}

// DeleteBudget removes the budget for a category. Removing an unknown
// category returns ErrNotFound.
func (s *Store) DeleteBudget(category string) error {
	res := s.db.Where("LOWER(category) = LOWER(?)", category).Delete(&models.CategoryBudget{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("budget for '%s': %w", category, ErrNotFound)
	}
	return nil
}

// RecordAlert appends an alert to the alert log.
func (s *Store) RecordAlert(alert *models.BudgetAlert) error {
	return s.db.Create(alert).Error
}

// Alerts returns the alert log, most recent first.
func (s *Store) Alerts() ([]models.BudgetAlert, error) {
	var alerts []models.BudgetAlert
	err := s.db.Order("id DESC").Find(&alerts).Error
	return alerts, err
}
