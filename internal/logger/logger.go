package logger

import (
	"io"
	"log/slog"
	"os"
)

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// NewLogger initializes a new slog logger based on the provided configuration.
// When output is nil the destination is resolved from cfg.Output; the explicit
// writer exists so tests can capture log lines.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	if output == nil {
		output = resolveOutput(cfg.Output)
	}

	level := new(slog.Level)
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		*level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

func resolveOutput(dest string) io.Writer {
	switch dest {
	case "stderr":
		return os.Stderr
	case "file":
		file, err := os.OpenFile("review-assistant.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			slog.Warn("failed to open log file, falling back to stdout", "error", err)
			return os.Stdout
		}
		return file
	default:
		return os.Stdout
	}
}
