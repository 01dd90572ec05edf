package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"avasile/fintrack/internal/csvparser"
	"avasile/fintrack/internal/importerror"
	"avasile/fintrack/internal/ofxparser"
	"avasile/fintrack/internal/validation"
)

// Type identifies one of the supported import formats.
type Type string

const (
	CSV Type = "csv"
	OFX Type = "ofx"
)

// ParseType parses a user-supplied format override.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case CSV:
		return CSV, nil
	case OFX:
		return OFX, nil
	default:
		return "", fmt.Errorf("unknown import format %q: supported formats are 'csv' and 'ofx'", s)
	}
}

// Detect selects the format for a file. An explicit override always wins;
// otherwise the decision is made strictly from the file extension. There
// is no content sniffing: an unsupported or missing extension fails before
// any parsing is attempted.
func Detect(path string, override Type) (Type, error) {
	if override != "" {
		return override, nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return CSV, nil
	case ".ofx":
		return OFX, nil
	default:
		return "", &importerror.UnknownFormatError{Path: path, Extension: ext}
	}
}

// New returns a parser instance for the given type, validating against the
// given limits.
func New(t Type, limits validation.Limits) (Parser, error) {
	switch t {
	case CSV:
		return csvparser.New(limits), nil
	case OFX:
		return ofxparser.New(limits), nil
	default:
		return nil, fmt.Errorf("unknown parser type: %s", t)
	}
}
