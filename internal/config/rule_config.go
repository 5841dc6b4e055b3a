package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/review-assistant/internal/core"
)

var (
	ErrRuleConfigNotFound = errors.New("rule config file not found")
	ErrRuleConfigParsing  = errors.New("rule config parsing failed")
)

// LoadRuleConfig loads and parses a .review-assistant.yml rule file.
// A missing file is not fatal: the defaults are returned together with
// ErrRuleConfigNotFound so callers can decide whether to warn.
func LoadRuleConfig(path string) (*core.RuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.DefaultRuleConfig(), ErrRuleConfigNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	rules := core.DefaultRuleConfig()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuleConfigParsing, err)
	}
	if rules.MaxLineLength <= 0 {
		return nil, fmt.Errorf("%w: max_line_length must be positive", ErrRuleConfigParsing)
	}
	for _, cat := range rules.DisabledCategories {
		if !knownCategory(cat) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrRuleConfigParsing, cat)
		}
	}
	return rules, nil
}

func knownCategory(cat core.Category) bool {
	for _, known := range core.Categories() {
		if cat == known {
			return true
		}
	}
	return false
}
