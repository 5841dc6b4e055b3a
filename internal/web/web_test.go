package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-assistant/internal/core"
)

func TestRenderIndex_EmptyForm(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderIndex(&buf, nil))

	out := buf.String()
	assert.Contains(t, out, "Paste your code:")
	assert.NotContains(t, out, "Detailed Findings", "empty form must not show the results table")
	assert.NotContains(t, out, "barChart")
}

func TestRenderIndex_WithFindings(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	report := &core.Report{
		InputName: "uploaded_code.py",
		Code:      "print('x')  # TODO",
		Findings: []core.Finding{
			{
				File:       "uploaded_code.py",
				Line:       1,
				Category:   core.CategoryMaintainability,
				Message:    "TODO left in code",
				Snippet:    "print('x')  # TODO",
				Suggestion: "Track the work in an issue instead.",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, r.RenderIndex(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "Detailed Findings")
	assert.Contains(t, out, "TODO left in code")
	assert.Contains(t, out, "Track the work in an issue instead.")
	// The findings are embedded as JSON for the chart aggregation.
	assert.Contains(t, out, `"category":"Maintainability"`)
	// All four chart canvases render.
	for _, id := range []string{"barChart", "doughnutChart", "lineChart", "polarChart"} {
		assert.Contains(t, out, id)
	}
}

func TestRenderIndex_EscapesSnippets(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	report := &core.Report{
		Code: "<script>alert(1)</script> # TODO",
		Findings: []core.Finding{
			{
				File:     "pasted_code.txt",
				Line:     1,
				Category: core.CategoryMaintainability,
				Message:  "TODO left in code",
				Snippet:  "<script>alert(1)</script> # TODO",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, r.RenderIndex(&buf, report))

	out := buf.String()
	assert.False(t, strings.Contains(out, `<div class="code"><script>alert(1)`),
		"snippet must be HTML-escaped in the table")
}
