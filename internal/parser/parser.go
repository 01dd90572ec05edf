package parser

import (
	"io"

	"avasile/fintrack/internal/models"
)

// Parser reads raw file content and produces a fully validated sequence of
// transactions. Implementations understand one external format (CSV, OFX)
// and fail atomically: any malformed record aborts the whole parse.
type Parser interface {
	Parse(r io.Reader) ([]models.Transaction, error)
}
