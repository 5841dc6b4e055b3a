package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application's configuration values.
type Config struct {
	ServerPort         string
	LLMProvider        string
	OllamaHost         string
	GeneratorModelName string
	GeminiAPIKey       string
	LogLevel           slog.Level
	MaxUploadBytes     int64
	SuggestionTimeout  time.Duration
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates required fields. It uses the Viper
// library to handle configuration loading and precedence.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LLM_PROVIDER", "ollama")
	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	viper.SetDefault("GENERATOR_MODEL_NAME", "gemma3:latest")
	viper.SetDefault("MAX_UPLOAD_BYTES", 1<<20)
	viper.SetDefault("SUGGESTION_TIMEOUT", "2m")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", "error", err)
		}
	}

	provider := viper.GetString("LLM_PROVIDER")
	if provider != "ollama" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q (expected 'ollama' or 'gemini')", provider)
	}
	if provider == "gemini" && viper.GetString("GEMINI_API_KEY") == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set for the gemini provider")
	}

	// Special handling for Gemini generator model name.
	generatorModel := viper.GetString("GENERATOR_MODEL_NAME")
	if provider == "gemini" {
		geminiModel := viper.GetString("GEMINI_GENERATOR_MODEL_NAME")
		if geminiModel != "" {
			generatorModel = geminiModel
		} else {
			generatorModel = "gemini-2.5-flash"
		}
	}

	timeout := viper.GetDuration("SUGGESTION_TIMEOUT")
	if timeout <= 0 {
		return nil, fmt.Errorf("SUGGESTION_TIMEOUT must be positive, got %s", timeout)
	}

	uploadLimit := viper.GetInt64("MAX_UPLOAD_BYTES")
	if uploadLimit <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", uploadLimit)
	}

	return &Config{
		ServerPort:         viper.GetString("SERVER_PORT"),
		LLMProvider:        provider,
		OllamaHost:         viper.GetString("OLLAMA_HOST"),
		GeneratorModelName: generatorModel,
		GeminiAPIKey:       viper.GetString("GEMINI_API_KEY"),
		LogLevel:           parseLogLevel(viper.GetString("LOG_LEVEL")),
		MaxUploadBytes:     uploadLimit,
		SuggestionTimeout:  timeout,
	}, nil
}

// parseLogLevel maps a level string onto slog.Level, defaulting to info.
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	default:
		slog.Warn("unrecognized log level, defaulting to info", "provided", s)
		return slog.LevelInfo
	}
}
