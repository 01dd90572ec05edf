// Package categorizer resolves transaction categories from user-defined
// pattern rules. Rules are ordered by insertion id and the first matching
// pattern wins; patterns that do not compile are skipped, never fatal.
package categorizer

import (
	"regexp"

	"avasile/fintrack/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// RuleSource supplies the stored categorization rules in ascending id
// order. The store implements it; tests substitute in-memory fixtures.
type RuleSource interface {
	Rules() ([]models.CategoryRule, error)
}

type compiledRule struct {
	re       *regexp.Regexp
	category string
}

// Categorizer matches transaction descriptions against an ordered rule set
// loaded once at construction time.
type Categorizer struct {
	rules []compiledRule
}

// FromSource loads and compiles the full rule set from src. Patterns that
// fail to compile are logged and dropped; the remaining rules keep their
// relative order, so a broken rule never changes which of the valid rules
// matches first.
func FromSource(src RuleSource) (*Categorizer, error) {
	stored, err := src.Rules()
	if err != nil {
		return nil, err
	}
	return New(stored), nil
}

// New compiles the given rules, which must already be in ascending id
// order.
func New(rules []models.CategoryRule) *Categorizer {
	c := &Categorizer{rules: make([]compiledRule, 0, len(rules))}
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			log.WithFields(logrus.Fields{
				"rule":    rule.ID,
				"pattern": rule.Pattern,
			}).WithError(err).Warn("Skipping rule with invalid pattern")
			continue
		}
		c.rules = append(c.rules, compiledRule{re: re, category: rule.Category})
	}
	return c
}

// Categorize returns the category of the first rule whose pattern matches
// the description, or false when no rule matches. Patterns are matched
// case-sensitively as written; rule authors opt into case folding with
// (?i).
func (c *Categorizer) Categorize(description string) (string, bool) {
	for _, rule := range c.rules {
		if rule.re.MatchString(description) {
			return rule.category, true
		}
	}
	return "", false
}

// Apply resolves the transaction's category in place when it is eligible:
// only empty or placeholder categories are ever touched, so an explicit
// category always wins over automatic categorization.
func (c *Categorizer) Apply(tx *models.Transaction) {
	if !tx.NeedsCategorization() {
		return
	}
	if category, ok := c.Categorize(tx.Description); ok {
		tx.Category = category
	}
}
