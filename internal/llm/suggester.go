package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sevigo/goframe/llms"

	"github.com/sevigo/review-assistant/internal/core"
)

// Suggester asks the generator model for a remediation suggestion, one
// finding per call. The model handle is created once at startup and is
// read-only afterwards, so a single Suggester is safe to share.
type Suggester struct {
	model    llms.Model
	prompts  *PromptManager
	provider ModelProvider
	timeout  time.Duration
	logger   *slog.Logger
}

// NewSuggester wires a Suggester from an already-connected model.
func NewSuggester(model llms.Model, prompts *PromptManager, provider ModelProvider, timeout time.Duration, logger *slog.Logger) *Suggester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Suggester{
		model:    model,
		prompts:  prompts,
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

var _ core.Suggester = (*Suggester)(nil)

// SuggestFix renders the suggestion prompt for one finding and runs a single
// generation call. Decoding is sampling-based, so the returned text differs
// between runs; callers may only rely on it being non-empty on success.
func (s *Suggester) SuggestFix(ctx context.Context, finding core.Finding) (string, error) {
	prompt, err := s.prompts.Render(SuggestFixPrompt, s.provider, finding)
	if err != nil {
		return "", fmt.Errorf("failed to render suggestion prompt: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	out, err := llms.GenerateFromSinglePrompt(ctx, s.model, prompt)
	if err != nil {
		return "", fmt.Errorf("suggestion generation failed for %s:%d: %w", finding.File, finding.Line, err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("model returned an empty suggestion for %s:%d", finding.File, finding.Line)
	}

	s.logger.Debug("generated suggestion",
		"file", finding.File,
		"line", finding.Line,
		"category", finding.Category,
		"duration", time.Since(start),
	)
	return out, nil
}
