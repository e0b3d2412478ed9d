package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	profanity "github.com/jamesainslie/go-profanity"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
model = "profanity.onnx"
vocab = "profanity.vocab"
mode = "threshold"
threshold = 0.75
bypass = true
budget = "50ms"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Model != "profanity.onnx" || cfg.Vocab != "profanity.vocab" {
		t.Errorf("paths = %q, %q", cfg.Model, cfg.Vocab)
	}
	if cfg.Mode != "threshold" || cfg.Threshold != 0.75 {
		t.Errorf("mode = %q threshold = %v", cfg.Mode, cfg.Threshold)
	}
	// Unset keys keep their defaults
	if cfg.Normalizers != "unicode,leet" || cfg.LogLevel != "info" {
		t.Errorf("defaults lost: normalizers = %q log = %q", cfg.Normalizers, cfg.LogLevel)
	}

	budget, err := cfg.budget()
	if err != nil || budget != 50*time.Millisecond {
		t.Errorf("budget() = %v, %v; want 50ms", budget, err)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", `modle = "typo.onnx"`},
		{"bad syntax", `model = `},
		{"wrong type", `threshold = "high"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfig_Budget(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "", want: profanity.Unbounded},
		{in: "unbounded", want: profanity.Unbounded},
		{in: "0s", want: 0},
		{in: "1.5s", want: 1500 * time.Millisecond},
		{in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Config{Budget: tt.in}.budget()
			if (err != nil) != tt.wantErr {
				t.Fatalf("budget() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("budget() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_Options(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := defaultConfig()
	if _, err := cfg.options(logger); err != nil {
		t.Errorf("default options error = %v", err)
	}

	cfg.Mode = "threshold"
	cfg.Normalizers = "none"
	if _, err := cfg.options(logger); err != nil {
		t.Errorf("threshold options error = %v", err)
	}

	cfg.Mode = "fuzzy"
	if _, err := cfg.options(logger); err == nil {
		t.Error("expected error for unknown mode")
	}

	cfg = defaultConfig()
	cfg.Normalizers = "unicode,soundex"
	if _, err := cfg.options(logger); err == nil {
		t.Error("expected error for unknown normalizer")
	}
}

func TestConfig_Level(t *testing.T) {
	for _, in := range []string{"debug", "info", "warn", "error"} {
		if _, err := (Config{LogLevel: in}).level(); err != nil {
			t.Errorf("level(%q) error = %v", in, err)
		}
	}
	if _, err := (Config{LogLevel: "loud"}).level(); err == nil {
		t.Error("expected error for unknown level")
	}
}
