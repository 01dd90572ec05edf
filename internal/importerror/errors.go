// Package importerror defines the error types produced by the import
// pipeline. Each taxonomy entry is its own type carrying structured
// context, so command handlers can format consistently and tests can
// match with errors.As instead of string inspection.
package importerror

import "fmt"

// UnknownFormatError reports that no parser could be selected for a file.
type UnknownFormatError struct {
	Path      string
	Extension string
}

func (e *UnknownFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unknown import format for '%s': no file extension and no format override", e.Path)
	}
	return fmt.Sprintf("unknown import format for '%s': unsupported extension '%s'", e.Path, e.Extension)
}

// DecodeError reports input that is not valid text, detected before any
// row or tag is inspected.
type DecodeError struct {
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot decode input: %s", e.Reason)
	}
	return fmt.Sprintf("cannot decode '%s': %s", e.Path, e.Reason)
}

// MalformedRowError reports a structural failure of a single CSV row.
// Line numbers are 1-based.
type MalformedRowError struct {
	Line     int
	Expected int
	Got      int
	Reason   string
}

func (e *MalformedRowError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: expected %d comma-separated fields, got %d", e.Line, e.Expected, e.Got)
}

// MalformedDocumentError reports a structurally invalid tag-based document.
type MalformedDocumentError struct {
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document: %s", e.Reason)
}

// FieldError is the shared context of the field-scoped validation errors.
// Position identifies the offending record: a line number for CSV input, a
// block index for tag-based input, zero for direct entry.
type FieldError struct {
	Position int
	Field    string
	Value    string
}

// InvalidDateError reports a date that is not a real calendar date in
// YYYY-MM-DD form.
type InvalidDateError struct {
	FieldError
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("%sinvalid date '%s': use YYYY-MM-DD", e.at(), e.Value)
}

// InvalidAmountError reports an amount that does not parse to an exact
// decimal.
type InvalidAmountError struct {
	FieldError
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("%sinvalid amount '%s': provide a valid decimal number", e.at(), e.Value)
}

// InvalidKindError reports a transaction kind outside the two enumerated
// literals.
type InvalidKindError struct {
	FieldError
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("%sinvalid transaction kind '%s': use 'income' or 'expense'", e.at(), e.Value)
}

// FieldTooLongError reports a text field exceeding its configured bound.
type FieldTooLongError struct {
	FieldError
	Limit int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("%s%s too long: maximum %d characters", e.at(), e.Field, e.Limit)
}

// EmptyFieldError reports a required text field that is empty after
// defaulting.
type EmptyFieldError struct {
	FieldError
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("%s%s must not be empty", e.at(), e.Field)
}

func (e *FieldError) at() string {
	if e.Position == 0 {
		return ""
	}
	return fmt.Sprintf("record %d: ", e.Position)
}

// PersistenceError reports a failed store operation during phase 2 of an
// import. Rows inserted before the failure are kept.
type PersistenceError struct {
	Op            string
	TransactionID string
	Err           error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed for transaction %s: %v", e.Op, e.TransactionID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// BudgetLookupError reports a store read failure while evaluating a budget
// threshold.
type BudgetLookupError struct {
	Category string
	Err      error
}

func (e *BudgetLookupError) Error() string {
	return fmt.Sprintf("budget lookup failed for category '%s': %v", e.Category, e.Err)
}

func (e *BudgetLookupError) Unwrap() error {
	return e.Err
}
