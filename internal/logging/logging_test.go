package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{" WARN ", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	logger, err := New("debug", true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be enabled")
	}

	if _, err := New("nope", false); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNewToFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "watch.log")

	// Act
	logger, err := NewToFile("info", false, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("issues loaded")
	_ = logger.Sync()

	// Assert
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "issues loaded") {
		t.Errorf("expected log line in file, got %q", data)
	}
}

func TestNewToFile_RequiresPath(t *testing.T) {
	if _, err := NewToFile("info", false, ""); err == nil {
		t.Error("expected error for empty path")
	}
}
