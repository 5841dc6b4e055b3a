// Package app initializes and orchestrates the main components of the
// application. It wires together the configuration, model client, analyzer,
// and HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/review-assistant/internal/analyzer"
	"github.com/sevigo/review-assistant/internal/config"
	"github.com/sevigo/review-assistant/internal/core"
	"github.com/sevigo/review-assistant/internal/llm"
	"github.com/sevigo/review-assistant/internal/server"
	"github.com/sevigo/review-assistant/internal/server/handler"
	"github.com/sevigo/review-assistant/internal/web"
)

// App holds the main application components.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	server *server.Server
	logger *slog.Logger
}

// newOllamaHTTPClient creates an HTTP client with longer timeouts for Ollama
// requests. Model inference can take a while, so the defaults are too tight.
func newOllamaHTTPClient() *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   5 * time.Minute,
	}
}

// NewApp sets up the application with all its dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	logger.Info("initializing review assistant",
		"llm_provider", cfg.LLMProvider,
		"generator_model", cfg.GeneratorModelName,
	)

	suggester, err := NewSuggester(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize page renderer: %w", err)
	}

	reviewHandler := handler.NewReviewHandler(analyzer.New(nil), suggester, renderer, cfg.MaxUploadBytes, logger)
	httpServer := server.NewServer(ctx, cfg.ServerPort, reviewHandler, logger)

	logger.Info("review assistant initialized successfully")
	return &App{
		ctx:    ctx,
		cfg:    cfg,
		server: httpServer,
		logger: logger,
	}, nil
}

// NewSuggester builds the suggestion generator from configuration: one model
// handle created here and passed down explicitly, no package-level state.
// The CLI reuses this for its --suggest mode.
func NewSuggester(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.Suggester, error) {
	model, err := createLLM(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator LLM: %w", err)
	}

	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt manager: %w", err)
	}

	provider := llm.DefaultProvider
	if cfg.LLMProvider == "gemini" {
		provider = llm.GeminiProvider
	}

	return llm.NewSuggester(model, promptMgr, provider, cfg.SuggestionTimeout, logger), nil
}

// Start runs the HTTP server.
func (a *App) Start() error {
	a.logger.Info("starting review assistant", "server_port", a.cfg.ServerPort)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down review assistant")

	if err := a.server.Stop(); err != nil {
		a.logger.Error("error during HTTP server shutdown", "error", err)
		return err
	}

	a.logger.Info("review assistant stopped successfully")
	return nil
}

// createLLM creates the appropriate LLM client based on the configured provider.
func createLLM(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llms.Model, error) {
	switch cfg.LLMProvider {
	case "gemini":
		logger.Info("using Gemini LLM provider", "model", cfg.GeneratorModelName)
		return gemini.New(ctx,
			gemini.WithModel(cfg.GeneratorModelName),
			gemini.WithAPIKey(cfg.GeminiAPIKey),
		)

	case "ollama":
		logger.Info("using Ollama LLM provider", "model", cfg.GeneratorModelName, "host", cfg.OllamaHost)
		return ollama.New(
			ollama.WithServerURL(cfg.OllamaHost),
			ollama.WithModel(cfg.GeneratorModelName),
			ollama.WithHTTPClient(newOllamaHTTPClient()),
			ollama.WithLogger(logger),
		)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}
