// Package validation enforces the field-level constraints every candidate
// transaction must satisfy, regardless of whether it came from a file
// import or direct entry.
package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"avasile/fintrack/internal/importerror"
	"avasile/fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Limits bounds the free-text fields. Zero values are replaced by the
// defaults, which match the original system's constraints.
type Limits struct {
	MaxDescriptionLen int
	MaxCategoryLen    int
}

const (
	DefaultMaxDescriptionLen = 255
	DefaultMaxCategoryLen    = 50
)

// DefaultLimits returns the default field bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxDescriptionLen: DefaultMaxDescriptionLen,
		MaxCategoryLen:    DefaultMaxCategoryLen,
	}
}

// Candidate is a raw transaction as read from an external source. Position
// identifies the record within its source (1-based) for error context;
// direct entry uses zero.
type Candidate struct {
	Position    int
	Date        string
	Description string
	Amount      string
	Kind        string
	Category    string
}

// Validate checks a candidate and converts it to a normalized Transaction.
// The returned transaction has no ID; the caller assigns one. Amounts are
// canonicalized to non-negative magnitudes, so signed bank-file amounts
// pass through unchanged in value but lose their sign.
func (l Limits) Validate(c Candidate) (models.Transaction, error) {
	if l.MaxDescriptionLen <= 0 {
		l.MaxDescriptionLen = DefaultMaxDescriptionLen
	}
	if l.MaxCategoryLen <= 0 {
		l.MaxCategoryLen = DefaultMaxCategoryLen
	}

	pos := func(field, value string) importerror.FieldError {
		return importerror.FieldError{Position: c.Position, Field: field, Value: value}
	}

	date, err := time.Parse(models.DateFormat, strings.TrimSpace(c.Date))
	if err != nil {
		return models.Transaction{}, &importerror.InvalidDateError{FieldError: pos("date", c.Date)}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(c.Amount))
	if err != nil {
		return models.Transaction{}, &importerror.InvalidAmountError{FieldError: pos("amount", c.Amount)}
	}

	kind, err := models.ParseKind(c.Kind)
	if err != nil {
		return models.Transaction{}, &importerror.InvalidKindError{FieldError: pos("kind", c.Kind)}
	}

	description := strings.TrimSpace(c.Description)
	if description == "" {
		return models.Transaction{}, &importerror.EmptyFieldError{FieldError: pos("description", "")}
	}
	if utf8.RuneCountInString(description) > l.MaxDescriptionLen {
		return models.Transaction{}, &importerror.FieldTooLongError{
			FieldError: pos("description", ""),
			Limit:      l.MaxDescriptionLen,
		}
	}

	category := strings.TrimSpace(c.Category)
	if category == "" {
		category = models.CategoryUncategorized
	}
	if utf8.RuneCountInString(category) > l.MaxCategoryLen {
		return models.Transaction{}, &importerror.FieldTooLongError{
			FieldError: pos("category", ""),
			Limit:      l.MaxCategoryLen,
		}
	}

	return models.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount.Abs(),
		Kind:        kind,
		Category:    category,
	}, nil
}
