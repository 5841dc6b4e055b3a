// Package analyzer implements the line-oriented issue detection pass.
package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sevigo/review-assistant/internal/core"
)

// bareExceptRe matches a catch-all exception handler: the keyword, optional
// whitespace, and the block-opening colon with nothing else on the line.
// Anchored to the whole line so "except ValueError:" never matches.
var bareExceptRe = regexp.MustCompile(`^\s*except\s*:\s*$`)

// Analyzer runs the per-line checks with a given rule configuration.
// The zero-config analyzer from New(nil) reproduces the default rules.
type Analyzer struct {
	rules *core.RuleConfig
}

// New creates an Analyzer. A nil rules argument selects the defaults.
func New(rules *core.RuleConfig) *Analyzer {
	if rules == nil {
		rules = core.DefaultRuleConfig()
	}
	return &Analyzer{rules: rules}
}

// Detect runs the default checks against text. It is the package-level
// convenience used by the web handler.
func Detect(filename, text string) []core.Finding {
	return New(nil).Detect(filename, text)
}

// Detect scans text line by line and returns all findings in ascending line
// order; within one line, checks run in the fixed order Style,
// Maintainability, BestPractice, ErrorHandling. The checks are independent,
// so a single line can produce several findings. The function is pure:
// identical input yields an identical result.
func (a *Analyzer) Detect(filename, text string) []core.Finding {
	var findings []core.Finding

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		// The terminator is not part of the line; on CRLF input that
		// includes the carriage return.
		line = strings.TrimSuffix(line, "\r")
		num := i + 1

		if !a.rules.CategoryDisabled(core.CategoryStyle) {
			if n := utf8.RuneCountInString(line); n > a.rules.MaxLineLength {
				findings = append(findings, core.Finding{
					File:     filename,
					Line:     num,
					Category: core.CategoryStyle,
					Message:  fmt.Sprintf("Line length %d exceeds %d chars", n, a.rules.MaxLineLength),
					Snippet:  line,
				})
			}
		}

		if !a.rules.CategoryDisabled(core.CategoryMaintainability) {
			// Case-sensitive substring match, no word boundary; matches
			// inside identifiers and string literals too.
			if strings.Contains(line, "TODO") {
				findings = append(findings, core.Finding{
					File:     filename,
					Line:     num,
					Category: core.CategoryMaintainability,
					Message:  "TODO left in code",
					Snippet:  line,
				})
			}
		}

		if !a.rules.CategoryDisabled(core.CategoryBestPractice) {
			if strings.Contains(line, "print(") {
				findings = append(findings, core.Finding{
					File:     filename,
					Line:     num,
					Category: core.CategoryBestPractice,
					Message:  "Avoid print in library code; prefer logging",
					Snippet:  line,
				})
			}
		}

		if !a.rules.CategoryDisabled(core.CategoryErrorHandling) {
			if bareExceptRe.MatchString(line) {
				findings = append(findings, core.Finding{
					File:     filename,
					Line:     num,
					Category: core.CategoryErrorHandling,
					Message:  "Bare except detected; catch specific exceptions",
					Snippet:  line,
				})
			}
		}
	}

	return findings
}
