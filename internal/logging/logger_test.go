package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.Caller {
		t.Error("Caller = true, want false by default")
	}
}

func TestInitWritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("hello from the resolver")

	output := buf.String()
	if !strings.Contains(output, "hello from the resolver") {
		t.Errorf("output = %q, want it to contain the logged message", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("output = %q, want a level field", output)
	}
}

func TestInitConsoleFormatIsNotJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("console message")

	if strings.Contains(buf.String(), `"level"`) {
		t.Errorf("console format output looks like JSON: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithComponentTagsEveryRecord(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	componentLogger := WithComponent("resolver")
	componentLogger.Info().Msg("polling cloud endpoint")

	output := buf.String()
	if !strings.Contains(output, `"component":"resolver"`) {
		t.Errorf("output = %q, want a component field", output)
	}
}

func TestNewTestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)
	logger.Info().Str("key", "value").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") || !strings.Contains(output, "value") {
		t.Errorf("output = %q, want the message and field present", output)
	}
}

func TestErrAttachesErrorField(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Err(errors.New("cloud endpoint unreachable")).Msg("poll failed")

	if !strings.Contains(buf.String(), "cloud endpoint unreachable") {
		t.Errorf("output = %q, want the error message present", buf.String())
	}
}
