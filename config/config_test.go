package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultProducesValidTimers(t *testing.T) {
	cfg := Default()
	if cfg.SlowTimer != time.Second {
		t.Fatalf("expected 1s slow timer, got %v", cfg.SlowTimer)
	}
	if cfg.NormalTimer != 100*time.Millisecond {
		t.Fatalf("expected 100ms normal timer, got %v", cfg.NormalTimer)
	}
	if len(cfg.Name) != 10 {
		t.Fatalf("expected a 10-char random name, got %q", cfg.Name)
	}
	if !cfg.Graphics {
		t.Fatal("expected graphics enabled by default")
	}
}

func TestFromFileRoundTrip(t *testing.T) {
	f := File{
		Name:        "drone-1",
		URL:         "example.com:8888",
		SlowTimer:   2000,
		NormalTimer: 150,
		MinTimer:    50,
		SpawnTimer:  20000,
		Color:       map[string]int{"r": 10, "g": 20, "b": 30, "a": 0},
		Graphics:    false,
	}
	cfg := FromFile(f)

	if cfg.Name != "drone-1" || cfg.URL != "example.com:8888" {
		t.Fatalf("unexpected identity fields: %+v", cfg)
	}
	if cfg.SlowTimer != 2*time.Second {
		t.Fatalf("expected slow timer 2s, got %v", cfg.SlowTimer)
	}
	if cfg.DefaultColor != (Color{R: 10, G: 20, B: 30, A: 0}) {
		t.Fatalf("unexpected color: %+v", cfg.DefaultColor)
	}
	if cfg.Graphics {
		t.Fatal("expected graphics disabled")
	}
}

func TestLoadValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	raw, err := json.Marshal(File{
		Name: "bot", URL: "host:1", SlowTimer: 1000, NormalTimer: 100,
		MinTimer: 100, SpawnTimer: 15000,
		Color: map[string]int{"r": 1, "g": 2, "b": 3, "a": 0}, Graphics: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.Name != "bot" {
		t.Fatalf("expected name 'bot', got %q", cfg.Name)
	}
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if cfg.Name == "" {
		t.Fatal("expected a usable default config even on error")
	}
}

func TestLoadSchemaViolationFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	// Missing required fields entirely.
	if err := os.WriteFile(path, []byte(`{"name": "x"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected a schema validation error")
	}
	if cfg.SlowTimer != time.Second {
		t.Fatalf("expected the default 1s slow timer after fallback, got %v", cfg.SlowTimer)
	}
}
