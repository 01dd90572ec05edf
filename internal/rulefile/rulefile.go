// Package rulefile loads categorization rule seeds from YAML files, used
// to populate the rule table in bulk.
package rulefile

import (
	"fmt"
	"os"
	"regexp"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Seed is one rule entry from a rule file. Seeds have no id; ids are
// assigned at insertion, so file order becomes match order.
type Seed struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
}

type document struct {
	Rules []Seed `yaml:"rules"`
}

// Load reads rule seeds from a YAML file. Every entry must carry a
// compilable pattern and a non-empty category; a bad entry fails the whole
// load so a partial rule set is never installed.
func Load(path string) ([]Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file '%s': %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rule file '%s': %w", path, err)
	}

	for i, seed := range doc.Rules {
		if seed.Pattern == "" {
			return nil, fmt.Errorf("rule %d in '%s': pattern must not be empty", i+1, path)
		}
		if _, err := regexp.Compile(seed.Pattern); err != nil {
			return nil, fmt.Errorf("rule %d in '%s': invalid pattern %q: %w", i+1, path, seed.Pattern, err)
		}
		if seed.Category == "" {
			return nil, fmt.Errorf("rule %d in '%s': category must not be empty", i+1, path)
		}
	}

	log.WithFields(logrus.Fields{"file": path, "count": len(doc.Rules)}).Debug("Loaded rule seeds")
	return doc.Rules, nil
}
