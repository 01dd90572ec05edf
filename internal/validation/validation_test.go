package validation

import (
	"strings"
	"testing"

	"avasile/fintrack/internal/importerror"
	"avasile/fintrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid() Candidate {
	return Candidate{
		Position:    1,
		Date:        "2025-01-03",
		Description: "Coffee",
		Amount:      "-4.65",
		Kind:        "expense",
		Category:    "Food",
	}
}

func TestValidateSuccess(t *testing.T) {
	tx, err := DefaultLimits().Validate(valid())
	require.NoError(t, err)

	assert.Equal(t, "2025-01-03", tx.Date.Format(models.DateFormat))
	assert.Equal(t, "Coffee", tx.Description)
	assert.Equal(t, "4.65", tx.Amount.String(), "signed input is canonicalized to a magnitude")
	assert.Equal(t, models.KindExpense, tx.Kind)
	assert.Equal(t, "Food", tx.Category)
	assert.Empty(t, tx.ID, "validator does not assign ids")
}

func TestValidateKindCaseInsensitive(t *testing.T) {
	c := valid()
	c.Kind = "EXPENSE"

	tx, err := DefaultLimits().Validate(c)
	require.NoError(t, err)
	assert.Equal(t, models.KindExpense, tx.Kind)
}

func TestValidateEmptyCategoryDefaults(t *testing.T) {
	c := valid()
	c.Category = ""

	tx, err := DefaultLimits().Validate(c)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryUncategorized, tx.Category)
}

func TestValidateInvalidDate(t *testing.T) {
	for _, bad := range []string{"bad-date", "2025-13-01", "2025-02-30", "03.01.2025", ""} {
		c := valid()
		c.Date = bad

		_, err := DefaultLimits().Validate(c)
		var dateErr *importerror.InvalidDateError
		assert.ErrorAs(t, err, &dateErr, "date %q", bad)
		assert.Equal(t, 1, dateErr.Position)
	}
}

func TestValidateInvalidAmount(t *testing.T) {
	for _, bad := range []string{"abc", "1,23x", "", "12.3.4"} {
		c := valid()
		c.Amount = bad

		_, err := DefaultLimits().Validate(c)
		var amountErr *importerror.InvalidAmountError
		assert.ErrorAs(t, err, &amountErr, "amount %q", bad)
	}
}

func TestValidateInvalidKind(t *testing.T) {
	c := valid()
	c.Kind = "transfer"

	_, err := DefaultLimits().Validate(c)
	var kindErr *importerror.InvalidKindError
	assert.ErrorAs(t, err, &kindErr)
	assert.Equal(t, "transfer", kindErr.Value)
}

func TestValidateEmptyDescription(t *testing.T) {
	c := valid()
	c.Description = "   "

	_, err := DefaultLimits().Validate(c)
	var emptyErr *importerror.EmptyFieldError
	assert.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "description", emptyErr.Field)
}

func TestValidateFieldTooLong(t *testing.T) {
	c := valid()
	c.Description = strings.Repeat("x", DefaultMaxDescriptionLen+1)

	_, err := DefaultLimits().Validate(c)
	var longErr *importerror.FieldTooLongError
	assert.ErrorAs(t, err, &longErr)
	assert.Equal(t, "description", longErr.Field)
	assert.Equal(t, DefaultMaxDescriptionLen, longErr.Limit)

	c = valid()
	c.Category = strings.Repeat("y", DefaultMaxCategoryLen+1)

	_, err = DefaultLimits().Validate(c)
	assert.ErrorAs(t, err, &longErr)
	assert.Equal(t, "category", longErr.Field)
}

func TestValidateCustomLimits(t *testing.T) {
	limits := Limits{MaxDescriptionLen: 5, MaxCategoryLen: 3}

	c := valid()
	c.Description = "Coffee" // six characters
	_, err := limits.Validate(c)
	var longErr *importerror.FieldTooLongError
	assert.ErrorAs(t, err, &longErr)

	c.Description = "Cafe"
	c.Category = "Food" // four characters
	_, err = limits.Validate(c)
	assert.ErrorAs(t, err, &longErr)
}

func TestValidateDecimalExactness(t *testing.T) {
	c := valid()
	c.Amount = "12345678.91"

	tx, err := DefaultLimits().Validate(c)
	require.NoError(t, err)
	assert.Equal(t, "12345678.91", tx.Amount.String())
}
