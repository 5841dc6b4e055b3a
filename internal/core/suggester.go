package core

import "context"

// Suggester produces remediation advice for a single finding. Implementations
// call into a text-generation model, so a call may be slow and its output is
// not deterministic across runs. Each call is independent; no conversational
// state carries over between findings.
type Suggester interface {
	SuggestFix(ctx context.Context, finding Finding) (string, error)
}
