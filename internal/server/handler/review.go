// Package handler provides the HTTP handlers for the review form.
package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sevigo/review-assistant/internal/analyzer"
	"github.com/sevigo/review-assistant/internal/core"
	"github.com/sevigo/review-assistant/internal/web"
)

// pastedInputName identifies submissions that came from the textarea rather
// than a file upload.
const pastedInputName = "pasted_code.txt"

// ReviewHandler serves the form and runs the analyze-then-suggest pipeline
// for a submission.
type ReviewHandler struct {
	analyzer       *analyzer.Analyzer
	suggester      core.Suggester
	renderer       *web.Renderer
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewReviewHandler creates a handler with all collaborators injected.
func NewReviewHandler(a *analyzer.Analyzer, s core.Suggester, r *web.Renderer, maxUploadBytes int64, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		analyzer:       a,
		suggester:      s,
		renderer:       r,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// ShowForm renders the empty submission form.
func (h *ReviewHandler) ShowForm(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderIndex(w, nil); err != nil {
		h.logger.Error("failed to render form", "error", err)
	}
}

// Analyze handles a form submission. The uploaded file's decoded content
// takes precedence over pasted text; undecodable bytes are replaced, never
// rejected. Whitespace-only input skips analysis and renders an empty result.
// Suggestions are generated sequentially, one call per finding, in detection
// order; any generation failure fails the whole request.
func (h *ReviewHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "Upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.logger.Error("failed to parse form", "error", err)
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	code := r.FormValue("code")
	inputName := pastedInputName

	if name, content, ok := h.readUpload(r); ok {
		inputName = name
		code = content
	}

	report := &core.Report{InputName: inputName, Code: code}

	if strings.TrimSpace(code) != "" {
		findings := h.analyzer.Detect(inputName, code)
		h.logger.Info("analysis complete", "input", inputName, "findings", len(findings))

		for i := range findings {
			suggestion, err := h.suggester.SuggestFix(r.Context(), findings[i])
			if err != nil {
				h.logger.Error("suggestion generation failed",
					"input", inputName,
					"line", findings[i].Line,
					"error", err,
				)
				http.Error(w, "Failed to generate suggestions", http.StatusInternalServerError)
				return
			}
			findings[i].Suggestion = suggestion
		}
		report.Findings = findings
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderIndex(w, report); err != nil {
		h.logger.Error("failed to render report", "error", err)
	}
}

// readUpload returns the decoded content of the optional file field. An
// absent field or an empty filename means no upload. Bytes that are not valid
// UTF-8 are substituted with the replacement character.
func (h *ReviewHandler) readUpload(r *http.Request) (name, content string, ok bool) {
	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" {
		return "", "", false
	}
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read uploaded file", "filename", header.Filename, "error", err)
		return "", "", false
	}

	return filepath.Base(header.Filename), strings.ToValidUTF8(string(raw), "�"), true
}
