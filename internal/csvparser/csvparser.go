// Package csvparser parses headerless five-field CSV exports into
// normalized transactions. The format is strict: every line carries
// exactly date, description, amount, kind and category, and the first
// offending row fails the whole input.
package csvparser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"unicode/utf8"

	"avasile/fintrack/internal/importerror"
	"avasile/fintrack/internal/models"
	"avasile/fintrack/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const fieldsPerRow = 5

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Parser parses the five-field CSV import format.
type Parser struct {
	limits validation.Limits
}

// New returns a CSV parser validating against the given limits.
func New(limits validation.Limits) *Parser {
	return &Parser{limits: limits}
}

// Parse reads the full input and returns either a complete, validated
// sequence of transactions or the first error encountered. No rows are
// silently dropped. Each transaction receives a freshly generated id.
func (p *Parser) Parse(r io.Reader) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &importerror.DecodeError{Reason: err.Error()}
	}

	// The whole input must be valid text before any row is inspected.
	if !utf8.Valid(data) {
		return nil, &importerror.DecodeError{Reason: "input is not valid UTF-8 text"}
	}
	if bytes.ContainsRune(data, 0) {
		return nil, &importerror.DecodeError{Reason: "input contains binary content"}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var transactions []models.Transaction
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &importerror.MalformedRowError{Line: parseErr.Line, Reason: parseErr.Err.Error()}
			}
			return nil, &importerror.MalformedRowError{Line: line, Reason: err.Error()}
		}

		if len(record) != fieldsPerRow {
			return nil, &importerror.MalformedRowError{Line: line, Expected: fieldsPerRow, Got: len(record)}
		}

		tx, err := p.limits.Validate(validation.Candidate{
			Position:    line,
			Date:        record[0],
			Description: record[1],
			Amount:      record[2],
			Kind:        record[3],
			Category:    record[4],
		})
		if err != nil {
			return nil, err
		}

		tx.ID = uuid.New().String()
		transactions = append(transactions, tx)
	}

	log.WithField("count", len(transactions)).Debug("Parsed CSV input")
	return transactions, nil
}
