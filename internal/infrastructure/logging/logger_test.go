package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/ashdown-labs/larkhub-core/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggingConfig
	}{
		{"json to stdout", config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"}},
		{"text to stderr", config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"}},
		{"defaults for unknown values", config.LoggingConfig{Level: "x", Format: "x", Output: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.cfg, "1.0.0")
			if log == nil || log.Logger == nil {
				t.Fatal("New returned an unusable logger")
			}
			// Must not panic.
			log.Debug("debug entry", "k", "v")
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	log := New(config.LoggingConfig{Level: "error", Format: "json", Output: "stdout"}, "test")

	if log.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled at error level")
	}
	if !log.Enabled(context.Background(), slog.LevelError) {
		t.Error("error not enabled at error level")
	}
}

func TestWith(t *testing.T) {
	log := Default()
	child := log.With("component", "registry")
	if child == nil || child.Logger == nil {
		t.Fatal("With returned an unusable logger")
	}
	if child == log {
		t.Error("With returned the parent logger")
	}
}

func TestDefault(t *testing.T) {
	log := Default()
	if log == nil || log.Logger == nil {
		t.Fatal("Default returned an unusable logger")
	}
	if !log.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("default logger should log at info")
	}
}
