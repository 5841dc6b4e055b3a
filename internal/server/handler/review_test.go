package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-assistant/internal/analyzer"
	"github.com/sevigo/review-assistant/internal/core"
	"github.com/sevigo/review-assistant/internal/web"
)

type stubSuggester struct {
	err   error
	calls int
}

func (s *stubSuggester) SuggestFix(_ context.Context, _ core.Finding) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "Replace the call with a logger invocation.", nil
}

func newTestHandler(t *testing.T, s core.Suggester) *ReviewHandler {
	t.Helper()
	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReviewHandler(analyzer.New(nil), s, renderer, 1<<20, logger)
}

// multipartBody builds a form submission with an optional file part.
func multipartBody(t *testing.T, code, filename, fileContent string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("code", code))
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestShowForm(t *testing.T) {
	h := newTestHandler(t, &stubSuggester{})

	rec := httptest.NewRecorder()
	h.ShowForm(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Paste your code:")
	assert.NotContains(t, rec.Body.String(), "Detailed Findings")
}

func TestAnalyze_PastedCode(t *testing.T) {
	stub := &stubSuggester{}
	h := newTestHandler(t, stub)

	body, contentType := multipartBody(t, "x = 1\nprint('debug')  # TODO fix\nexcept:\n", "", "")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, "TODO left in code")
	assert.Contains(t, out, "Bare except detected; catch specific exceptions")
	assert.Contains(t, out, pastedInputName)
	// Three findings, one suggestion call each, in detection order.
	assert.Equal(t, 3, stub.calls)
	assert.Contains(t, out, "Replace the call with a logger invocation.")
}

func TestAnalyze_WhitespaceOnlyInputSkipsAnalysis(t *testing.T) {
	stub := &stubSuggester{}
	h := newTestHandler(t, stub)

	body, contentType := multipartBody(t, "   \n\t  ", "", "")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Detailed Findings")
	assert.Zero(t, stub.calls, "no analysis must run for empty input")
}

func TestAnalyze_UploadTakesPrecedence(t *testing.T) {
	stub := &stubSuggester{}
	h := newTestHandler(t, stub)

	body, contentType := multipartBody(t, "x = 1", "lib.py", "# TODO migrate\n")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, "lib.py", "findings must be attributed to the uploaded file")
	assert.Contains(t, out, "TODO left in code")
	assert.Equal(t, 1, stub.calls)
}

func TestAnalyze_UndecodableUploadIsReplacedNotRejected(t *testing.T) {
	stub := &stubSuggester{}
	h := newTestHandler(t, stub)

	invalid := string([]byte{0xff, 0xfe}) + " # TODO\n"
	body, contentType := multipartBody(t, "", "weird.py", invalid)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "TODO left in code")
	assert.Contains(t, rec.Body.String(), "�")
}

func TestAnalyze_SuggestionFailureIsServerError(t *testing.T) {
	stub := &stubSuggester{err: errors.New("model unavailable")}
	h := newTestHandler(t, stub)

	body, contentType := multipartBody(t, "# TODO\n", "", "")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "model unavailable",
		"internal error details must not leak to the client")
}

func TestAnalyze_SuggestionTextIsNonEmpty(t *testing.T) {
	// The generated text is non-deterministic in production; the only
	// contract is a non-empty string per finding.
	stub := &stubSuggester{}
	h := newTestHandler(t, stub)

	body, contentType := multipartBody(t, "print(1)\n", "", "")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	suggestion, err := stub.SuggestFix(context.Background(), core.Finding{})
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(suggestion))
}
