// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

// Category classifies a finding reported by the analyzer.
type Category string

const (
	CategoryStyle           Category = "Style"
	CategoryMaintainability Category = "Maintainability"
	CategoryBestPractice    Category = "BestPractice"
	CategoryErrorHandling   Category = "ErrorHandling"
)

// Categories lists all known categories in their fixed evaluation order.
func Categories() []Category {
	return []Category{
		CategoryStyle,
		CategoryMaintainability,
		CategoryBestPractice,
		CategoryErrorHandling,
	}
}

// Finding is one flagged line of analyzed source. The analyzer creates it
// without a suggestion; the caller attaches the suggestion afterwards. It is
// never mutated otherwise and is discarded once the response is rendered.
type Finding struct {
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	Snippet    string   `json:"snippet"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Report is the result of analyzing one submission. It carries the original
// input so the form can be re-rendered, plus the enriched findings.
type Report struct {
	InputName string
	Code      string
	Findings  []Finding
}

// CountsByCategory aggregates finding counts per category. Categories with
// no findings are omitted.
func (r *Report) CountsByCategory() map[Category]int {
	counts := make(map[Category]int)
	for _, f := range r.Findings {
		counts[f.Category]++
	}
	return counts
}
