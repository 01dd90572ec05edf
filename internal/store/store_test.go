package store

import (
	"testing"
	"time"

	"avasile/fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func newTransaction(date, description, amount string, kind models.Kind, category string) models.Transaction {
	d, err := time.Parse(models.DateFormat, date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		ID:          uuid.New().String(),
		Date:        d,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Kind:        kind,
		Category:    category,
	}
}

func TestInsertAndListTransactions(t *testing.T) {
	s := openTestStore(t)

	older := newTransaction("2024-03-01", "Coffee", "4.50", models.KindExpense, "Food")
	newer := newTransaction("2024-03-05", "Salary", "2500.00", models.KindIncome, "Salary")
	require.NoError(t, s.InsertTransaction(&older))
	require.NoError(t, s.InsertTransaction(&newer))

	got, err := s.Transactions()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
}

func TestAmountRoundTripIsExact(t *testing.T) {
	s := openTestStore(t)

	// 0.1+0.2 style values that lose precision as float64.
	tx := newTransaction("2024-03-01", "Coffee", "0.30000000000000004", models.KindExpense, "Food")
	tx.Amount = decimal.RequireFromString("0.1").Add(decimal.RequireFromString("0.2"))
	require.NoError(t, s.InsertTransaction(&tx))

	got, err := s.Transactions()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("0.3")))
}

func TestRemoveTransaction(t *testing.T) {
	s := openTestStore(t)

	tx := newTransaction("2024-03-01", "Coffee", "4.50", models.KindExpense, "Food")
	require.NoError(t, s.InsertTransaction(&tx))

	require.NoError(t, s.RemoveTransaction(tx.ID))

	got, err := s.Transactions()
	require.NoError(t, err)
	assert.Empty(t, got)

	err = s.RemoveTransaction(tx.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchByCategoryIsCaseInsensitive(t *testing.T) {
	s := openTestStore(t)

	food := newTransaction("2024-03-01", "Coffee", "4.50", models.KindExpense, "Food")
	transport := newTransaction("2024-03-02", "Uber", "19.50", models.KindExpense, "Transport")
	require.NoError(t, s.InsertTransaction(&food))
	require.NoError(t, s.InsertTransaction(&transport))

	got, err := s.SearchByCategory("food")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, food.ID, got[0].ID)
}

func TestExpensesBetween(t *testing.T) {
	s := openTestStore(t)

	inside := newTransaction("2024-03-10", "Coffee", "4.50", models.KindExpense, "Food")
	before := newTransaction("2024-02-28", "Uber", "19.50", models.KindExpense, "Transport")
	income := newTransaction("2024-03-15", "Salary", "2500", models.KindIncome, "Salary")
	for _, tx := range []*models.Transaction{&inside, &before, &income} {
		require.NoError(t, s.InsertTransaction(tx))
	}

	from, _ := time.Parse(models.DateFormat, "2024-03-01")
	to, _ := time.Parse(models.DateFormat, "2024-03-31")
	got, err := s.ExpensesBetween(from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inside.ID, got[0].ID)
}

func TestSumExpenses(t *testing.T) {
	s := openTestStore(t)

	transactions := []models.Transaction{
		newTransaction("2024-03-01", "Coffee", "4.50", models.KindExpense, "Food"),
		newTransaction("2024-03-02", "Groceries", "60.10", models.KindExpense, "Food"),
		newTransaction("2024-03-03", "Uber", "19.50", models.KindExpense, "Transport"),
		newTransaction("2024-03-04", "Refund", "10.00", models.KindIncome, "Food"),
	}
	for i := range transactions {
		require.NoError(t, s.InsertTransaction(&transactions[i]))
	}

	total, err := s.SumExpenses("food")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("64.60")), "got %s", total)
}

func TestSumExpensesEmptyCategory(t *testing.T) {
	s := openTestStore(t)

	total, err := s.SumExpenses("Food")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestRulesOrderedByID(t *testing.T) {
	s := openTestStore(t)

	first, err := s.AddRule("(?i)coffee", "Food")
	require.NoError(t, err)
	second, err := s.AddRule("^Uber", "Transport")
	require.NoError(t, err)
	assert.Less(t, first.ID, second.ID)

	rules, err := s.Rules()
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, first.ID, rules[0].ID)
	assert.Equal(t, second.ID, rules[1].ID)
}

func TestDeleteRule(t *testing.T) {
	s := openTestStore(t)

	rule, err := s.AddRule("(?i)coffee", "Food")
	require.NoError(t, err)

	require.NoError(t, s.DeleteRule(rule.ID))
	assert.ErrorIs(t, s.DeleteRule(rule.ID), ErrNotFound)
}

func TestBudgetLifecycle(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Budget("Food")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetBudget("Food", decimal.RequireFromString("100")))

	amount, ok, err := s.Budget("food")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, amount.Equal(decimal.RequireFromString("100")))

	// Setting again replaces.
	require.NoError(t, s.SetBudget("Food", decimal.RequireFromString("150")))
	amount, ok, err = s.Budget("Food")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, amount.Equal(decimal.RequireFromString("150")))

	budgets, err := s.Budgets()
	require.NoError(t, err)
	require.Len(t, budgets, 1)

	require.NoError(t, s.DeleteBudget("FOOD"))
	assert.ErrorIs(t, s.DeleteBudget("Food"), ErrNotFound)
}

func TestAlertLogIsAppendOnly(t *testing.T) {
	s := openTestStore(t)

	first := models.BudgetAlert{Category: "Food", Message: "first"}
	second := models.BudgetAlert{Category: "Food", Message: "second"}
	require.NoError(t, s.RecordAlert(&first))
	require.NoError(t, s.RecordAlert(&second))
	assert.NotZero(t, first.ID)
	assert.Less(t, first.ID, second.ID)

	alerts, err := s.Alerts()
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "second", alerts[0].Message)
	assert.Equal(t, "first", alerts[1].Message)
}
