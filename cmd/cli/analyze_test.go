package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-assistant/internal/analyzer"
	"github.com/sevigo/review-assistant/internal/core"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestAnalyzeTree_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "# TODO one\n")
	writeFile(t, dir, "sub/b.py", "print(1)\n")
	writeFile(t, dir, "vendor/c.py", "# TODO ignored\n")
	writeFile(t, dir, "notes.md", "# TODO ignored too\n")

	rules := core.DefaultRuleConfig()
	rules.ExcludeDirs = []string{"vendor"}
	rules.ExcludeExts = []string{".md"}

	findings, scanned, err := analyzeTree(context.Background(), analyzer.New(rules), rules, dir, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, scanned)
	require.Len(t, findings, 2)

	files := []string{findings[0].File, findings[1].File}
	assert.Contains(t, files, "a.py")
	assert.Contains(t, files, filepath.Join("sub", "b.py"))
}

func TestAnalyzeTree_SingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "single.py", "except:\n")

	rules := core.DefaultRuleConfig()
	path := filepath.Join(dir, "single.py")
	findings, scanned, err := analyzeTree(context.Background(), analyzer.New(rules), rules, path, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, scanned)
	require.Len(t, findings, 1)
	assert.Equal(t, core.CategoryErrorHandling, findings[0].Category)
}

func TestAnalyzeTree_MissingPath(t *testing.T) {
	rules := core.DefaultRuleConfig()
	_, _, err := analyzeTree(context.Background(), analyzer.New(rules), rules, filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestAnalyzeTree_WithSuggester(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "# TODO\nprint(2)\n")

	rules := core.DefaultRuleConfig()
	stub := &stubCLISuggester{}
	findings, _, err := analyzeTree(context.Background(), analyzer.New(rules), rules, dir, stub)
	require.NoError(t, err)

	require.Len(t, findings, 2)
	for _, f := range findings {
		assert.NotEmpty(t, f.Suggestion)
	}
	assert.Equal(t, 2, stub.calls)
}

type stubCLISuggester struct{ calls int }

func (s *stubCLISuggester) SuggestFix(_ context.Context, _ core.Finding) (string, error) {
	s.calls++
	return "Remove the marker once the work is tracked.", nil
}
