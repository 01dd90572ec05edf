package categorizer

import (
	"errors"
	"testing"

	"avasile/fintrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRuleSource struct {
	rules []models.CategoryRule
	err   error
}

func (f *fakeRuleSource) Rules() ([]models.CategoryRule, error) {
	return f.rules, f.err
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	c := New([]models.CategoryRule{
		{ID: 1, Pattern: "^Uber.*", Category: "Transport"},
		{ID: 2, Pattern: "Uber", Category: "Travel"},
		{ID: 3, Pattern: ".*", Category: "Everything"},
	})

	category, ok := c.Categorize("Uber Trip")
	require.True(t, ok)
	assert.Equal(t, "Transport", category, "lowest-id matching rule wins")
}

func TestCategorizeNoMatch(t *testing.T) {
	c := New([]models.CategoryRule{
		{ID: 1, Pattern: "^Uber.*", Category: "Transport"},
	})

	_, ok := c.Categorize("Coffee Corner")
	assert.False(t, ok)
}

func TestCategorizeEmptyRuleSet(t *testing.T) {
	c := New(nil)
	_, ok := c.Categorize("anything")
	assert.False(t, ok)
}

func TestInvalidPatternIsSkippedNotFatal(t *testing.T) {
	// The broken pattern sits between two valid rules; it must neither
	// abort loading nor shadow the later rule.
	c := New([]models.CategoryRule{
		{ID: 1, Pattern: "^Uber.*", Category: "Transport"},
		{ID: 2, Pattern: "([invalid", Category: "Broken"},
		{ID: 3, Pattern: "Coffee", Category: "Food"},
	})

	category, ok := c.Categorize("Coffee Corner")
	require.True(t, ok)
	assert.Equal(t, "Food", category)

	category, ok = c.Categorize("Uber Trip")
	require.True(t, ok)
	assert.Equal(t, "Transport", category)
}

func TestCategorizeCaseSensitive(t *testing.T) {
	c := New([]models.CategoryRule{
		{ID: 1, Pattern: "^uber", Category: "Transport"},
		{ID: 2, Pattern: "(?i)^lidl", Category: "Groceries"},
	})

	_, ok := c.Categorize("Uber Trip")
	assert.False(t, ok, "patterns match case-sensitively as written")

	category, ok := c.Categorize("LIDL Filiale 42")
	require.True(t, ok, "rules opt into case folding with (?i)")
	assert.Equal(t, "Groceries", category)
}

func TestApplyResolvesPlaceholderCategory(t *testing.T) {
	c := New([]models.CategoryRule{
		{ID: 1, Pattern: "^Uber.*", Category: "Transport"},
	})

	tx := models.Transaction{Description: "Uber Trip", Category: models.CategoryUncategorized}
	c.Apply(&tx)
	assert.Equal(t, "Transport", tx.Category)

	tx = models.Transaction{Description: "Uber Trip", Category: ""}
	c.Apply(&tx)
	assert.Equal(t, "Transport", tx.Category)
}

func TestApplyNeverTouchesExplicitCategory(t *testing.T) {
	c := New([]models.CategoryRule{
		{ID: 1, Pattern: ".*", Category: "Everything"},
	})

	tx := models.Transaction{Description: "Uber Trip", Category: "Travel"}
	c.Apply(&tx)
	assert.Equal(t, "Travel", tx.Category)
}

func TestApplyLeavesPlaceholderWhenNothingMatches(t *testing.T) {
	c := New([]models.CategoryRule{
		{ID: 1, Pattern: "^Uber.*", Category: "Transport"},
	})

	tx := models.Transaction{Description: "Coffee", Category: models.CategoryUncategorized}
	c.Apply(&tx)
	assert.Equal(t, models.CategoryUncategorized, tx.Category)
}

func TestFromSource(t *testing.T) {
	src := &fakeRuleSource{rules: []models.CategoryRule{
		{ID: 1, Pattern: "^Uber.*", Category: "Transport"},
	}}

	c, err := FromSource(src)
	require.NoError(t, err)
	category, ok := c.Categorize("Uber Trip")
	require.True(t, ok)
	assert.Equal(t, "Transport", category)
}

func TestFromSourcePropagatesError(t *testing.T) {
	src := &fakeRuleSource{err: errors.New("database is locked")}

	_, err := FromSource(src)
	assert.Error(t, err)
}
