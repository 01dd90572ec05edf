// Package export writes the stored ledger back out as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"avasile/fintrack/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Row is the CSV shape of an exported transaction.
type Row struct {
	ID          string `csv:"id"`
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Kind        string `csv:"kind"`
	Category    string `csv:"category"`
}

func toRow(tx models.Transaction) Row {
	return Row{
		ID:          tx.ID,
		Date:        tx.Date.Format(models.DateFormat),
		Description: tx.Description,
		Amount:      tx.Amount.String(),
		Kind:        string(tx.Kind),
		Category:    tx.Category,
	}
}

// Write renders transactions as CSV to w. When withHeaders is false the
// header row is omitted.
func Write(w io.Writer, transactions []models.Transaction, withHeaders bool) error {
	rows := make([]Row, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, toRow(tx))
	}

	csvWriter := gocsv.NewSafeCSVWriter(csv.NewWriter(w))
	if !withHeaders {
		return gocsv.MarshalCSVWithoutHeaders(rows, csvWriter)
	}
	if err := gocsv.MarshalCSV(rows, csvWriter); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteFile exports transactions to a CSV file.
func WriteFile(path string, transactions []models.Transaction, withHeaders bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file '%s': %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close export file")
		}
	}()

	if err := Write(f, transactions, withHeaders); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"file":  path,
		"count": len(transactions),
	}).Info("Exported transactions to CSV file")
	return nil
}
