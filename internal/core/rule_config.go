package core

// RuleConfig represents the structure of the .review-assistant.yml file.
// The zero value is not usable; call DefaultRuleConfig and let yaml
// unmarshalling override individual fields.
type RuleConfig struct {
	// Maximum allowed line length before a Style finding is emitted.
	MaxLineLength int `yaml:"max_line_length"`

	// Categories whose checks are skipped entirely.
	// Example: ["BestPractice"]
	DisabledCategories []Category `yaml:"disabled_categories"`

	// High-performance exclusion of entire directories by name when
	// walking a tree. Example: ["dist", "build", "vendor"]
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// Exclusion of files based on their extension.
	// The leading dot is optional. Example: [".md", "lock", ".log"]
	ExcludeExts []string `yaml:"exclude_exts"`
}

// DefaultRuleConfig returns the rule set the web service always runs with.
func DefaultRuleConfig() *RuleConfig {
	return &RuleConfig{
		MaxLineLength:      120,
		DisabledCategories: []Category{},
		ExcludeDirs:        []string{},
		ExcludeExts:        []string{},
	}
}

// CategoryDisabled reports whether checks for the given category are off.
func (c *RuleConfig) CategoryDisabled(cat Category) bool {
	for _, d := range c.DisabledCategories {
		if d == cat {
			return true
		}
	}
	return false
}
