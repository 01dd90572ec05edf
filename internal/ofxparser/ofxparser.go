// Package ofxparser parses OFX bank exports into normalized transactions.
// Both the SGML flavour (OFX 1.x) and the XML flavour (OFX 2.x) are
// accepted: the input is first normalized to well-formed XML, then the
// transaction blocks are extracted with XPath.
package ofxparser

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"avasile/fintrack/internal/importerror"
	"avasile/fintrack/internal/models"
	"avasile/fintrack/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/xmlpath.v2"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var (
	pathStmtTrn  = xmlpath.MustCompile("//STMTTRN")
	pathDtPosted = xmlpath.MustCompile("DTPOSTED")
	pathTrnAmt   = xmlpath.MustCompile("TRNAMT")
	pathTrnType  = xmlpath.MustCompile("TRNTYPE")
	pathName     = xmlpath.MustCompile("NAME")
	pathMemo     = xmlpath.MustCompile("MEMO")
	pathFitID    = xmlpath.MustCompile("FITID")
	pathCategory = xmlpath.MustCompile("CATEGORY")
)

// Parser parses OFX documents.
type Parser struct {
	limits validation.Limits
}

// New returns an OFX parser validating against the given limits.
func New(limits validation.Limits) *Parser {
	return &Parser{limits: limits}
}

// Parse reads the full document and returns either every transaction block
// normalized and validated, or the first error. The document is treated
// atomically: a single malformed block fails the whole parse.
//
// Identifier policy: a present FITID becomes the transaction id verbatim,
// preserving bank-assigned identity across re-imports; otherwise a fresh
// unique id is generated. A present non-empty CATEGORY is kept as-is and
// shields the transaction from rule-based categorization downstream.
func (p *Parser) Parse(r io.Reader) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &importerror.DecodeError{Reason: err.Error()}
	}
	if !utf8.Valid(data) {
		return nil, &importerror.DecodeError{Reason: "input is not valid UTF-8 text"}
	}

	xmlDoc, err := normalizeToXML(string(data))
	if err != nil {
		return nil, err
	}

	root, err := xmlpath.Parse(strings.NewReader(xmlDoc))
	if err != nil {
		return nil, &importerror.MalformedDocumentError{Reason: err.Error()}
	}

	var transactions []models.Transaction
	block := 0
	iter := pathStmtTrn.Iter(root)
	for iter.Next() {
		block++
		node := iter.Node()

		posted, ok := pathDtPosted.String(node)
		if !ok || strings.TrimSpace(posted) == "" {
			return nil, &importerror.MalformedDocumentError{
				Reason: fmt.Sprintf("transaction block %d: missing required tag DTPOSTED", block),
			}
		}
		date, err := parsePostedDate(posted)
		if err != nil {
			return nil, &importerror.InvalidDateError{
				FieldError: importerror.FieldError{Position: block, Field: "DTPOSTED", Value: posted},
			}
		}

		amount, ok := pathTrnAmt.String(node)
		if !ok || strings.TrimSpace(amount) == "" {
			return nil, &importerror.MalformedDocumentError{
				Reason: fmt.Sprintf("transaction block %d: missing required tag TRNAMT", block),
			}
		}

		description, _ := pathName.String(node)
		if strings.TrimSpace(description) == "" {
			description, _ = pathMemo.String(node)
		}

		category, _ := pathCategory.String(node)
		trnType, _ := pathTrnType.String(node)

		tx, err := p.limits.Validate(validation.Candidate{
			Position:    block,
			Date:        date,
			Description: description,
			Amount:      amount,
			Kind:        string(inferKind(trnType, amount)),
			Category:    category,
		})
		if err != nil {
			return nil, err
		}

		if fitID, ok := pathFitID.String(node); ok && strings.TrimSpace(fitID) != "" {
			tx.ID = strings.TrimSpace(fitID)
		} else {
			tx.ID = uuid.New().String()
		}

		transactions = append(transactions, tx)
	}

	log.WithField("count", len(transactions)).Debug("Parsed OFX document")
	return transactions, nil
}

// parsePostedDate accepts the OFX timestamp form (YYYYMMDD with an optional
// time suffix) as well as the ISO calendar form, and renders the canonical
// date string for validation.
func parsePostedDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 8 && allDigits(s[:8]) {
		s = s[:8]
		return s[:4] + "-" + s[4:6] + "-" + s[6:8], nil
	}
	if len(s) == 10 && s[4] == '-' && s[7] == '-' {
		return s, nil
	}
	return "", fmt.Errorf("unrecognized DTPOSTED value %q", s)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// inferKind normalizes the OFX direction indicators onto the two-valued
// kind enumeration: an explicit TRNTYPE wins, otherwise the amount sign
// decides (negative/debit means expense, positive/credit means income).
func inferKind(trnType, amount string) models.Kind {
	switch strings.ToUpper(strings.TrimSpace(trnType)) {
	case "DEBIT":
		return models.KindExpense
	case "CREDIT":
		return models.KindIncome
	}
	if strings.HasPrefix(strings.TrimSpace(amount), "-") {
		return models.KindExpense
	}
	return models.KindIncome
}
