package logging

import (
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" ERROR ", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInitLoggerWritesConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	var console strings.Builder

	previous := DefaultLoggingService
	defer func() { DefaultLoggingService = previous }()

	svc := InitLogger(Options{Dir: dir, Level: "warn", RetentionWeeks: 1, MaxFileSize: 1 << 20, Console: &console})
	defer svc.Close()

	Info("index loaded", "chunks", 3)
	Warn("expansion degraded", "provider", "mock")

	if strings.Contains(console.String(), "index loaded") {
		t.Error("Expected info line to be filtered from console at warn level")
	}
	if !strings.Contains(console.String(), "expansion degraded") {
		t.Error("Expected warn line on console")
	}

	content, err := os.ReadFile(svc.writer.CurrentFile())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	for _, want := range []string{`"msg":"index loaded"`, `"msg":"expansion degraded"`} {
		if !strings.Contains(string(content), want) {
			t.Errorf("Expected file log to contain %s, got %s", want, content)
		}
	}
}

func TestInitLoggerWithoutDirectory(t *testing.T) {
	previous := DefaultLoggingService
	defer func() { DefaultLoggingService = previous }()

	var console strings.Builder
	svc := InitLogger(Options{Console: &console})
	if svc.writer != nil {
		t.Error("Expected no file writer without a directory")
	}
	if err := svc.Close(); err != nil {
		t.Errorf("Close() returned %v", err)
	}

	Error("boom")
	if !strings.Contains(console.String(), "boom") {
		t.Error("Expected console output")
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	previous := DefaultLoggingService
	DefaultLoggingService = nil
	defer func() { DefaultLoggingService = previous }()

	if Logger() == nil {
		t.Fatal("Expected fallback logger")
	}
	Info("fallback info")
	Debug("fallback debug")
}
