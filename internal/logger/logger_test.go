package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		checkFunc func(t *testing.T, output string)
	}{
		{
			name:   "text logger at info level",
			config: Config{Level: "info", Format: "text"},
			checkFunc: func(t *testing.T, output string) {
				if !strings.Contains(output, "level=INFO") ||
					!strings.Contains(output, `msg="test message"`) {
					t.Errorf("expected text log output with info level and message, got: %s", output)
				}
			},
		},
		{
			name:   "json logger at debug level",
			config: Config{Level: "debug", Format: "json"},
			checkFunc: func(t *testing.T, output string) {
				var entry map[string]any
				if err := json.Unmarshal([]byte(output), &entry); err != nil {
					t.Fatalf("failed to unmarshal JSON log: %v, output: %s", err, output)
				}
				if entry["level"] != "DEBUG" || entry["msg"] != "test message" {
					t.Errorf("unexpected JSON log entry: %v", entry)
				}
			},
		},
		{
			name:   "invalid level falls back to info",
			config: Config{Level: "loud", Format: "text"},
			checkFunc: func(t *testing.T, output string) {
				if !strings.Contains(output, "level=INFO") {
					t.Errorf("expected info-level output, got: %s", output)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewLogger(tt.config, &buf)

			if tt.config.Level == "debug" {
				log.Debug("test message")
			} else {
				log.Info("test message")
			}

			tt.checkFunc(t, buf.String())
		})
	}
}

func TestNewLogger_DebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Level: "info", Format: "text"}, &buf)
	log.Debug("should not appear")
	if buf.Len() != 0 {
		t.Errorf("debug message leaked at info level: %s", buf.String())
	}
}
