// Package config loads and validates the drone's runtime settings: wire
// endpoint, sleep timers, identity, and the optional telemetry toggle.
package config

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	mathrand "math/rand"
	"os"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/drone-battle/core/field"
)

// Config is the resolved runtime configuration used throughout the
// process.
type Config struct {
	Name         string
	URL          string
	SlowTimer    time.Duration
	NormalTimer  time.Duration
	MinTimer     time.Duration
	SpawnTimer   time.Duration
	DefaultColor Color
	Graphics     bool
}

// Color is an RGBA color, one byte per channel (alpha carried for parity
// with the wire format, though the drone's own alpha is always sent as 0).
type Color struct {
	R, G, B, A uint8
}

// Timing projects the subset of Config the field package needs.
func (c Config) Timing() field.Timing {
	return field.Timing{NormalTimer: c.NormalTimer, SpawnTimer: c.SpawnTimer}
}

// File is the on-disk JSON shape: timers in milliseconds, color as a
// byte map, matching the reference client's ConfigJSON.
type File struct {
	Name        string         `json:"name"`
	URL         string         `json:"url"`
	SlowTimer   int64          `json:"slow_timer"`
	NormalTimer int64          `json:"normal_timer"`
	MinTimer    int64          `json:"min_timer"`
	SpawnTimer  int64          `json:"spawn_timer"`
	Color       map[string]int `json:"default_color"`
	Graphics    bool           `json:"graphics"`
}

// FromFile resolves a decoded File into a Config.
func FromFile(f File) Config {
	return Config{
		Name:        f.Name,
		URL:         f.URL,
		SlowTimer:   time.Duration(f.SlowTimer) * time.Millisecond,
		NormalTimer: time.Duration(f.NormalTimer) * time.Millisecond,
		MinTimer:    time.Duration(f.MinTimer) * time.Millisecond,
		SpawnTimer:  time.Duration(f.SpawnTimer) * time.Millisecond,
		DefaultColor: Color{
			R: byteOr(f.Color, "r", 0),
			G: byteOr(f.Color, "g", 0),
			B: byteOr(f.Color, "b", 0),
			A: byteOr(f.Color, "a", 0),
		},
		Graphics: f.Graphics,
	}
}

func byteOr(m map[string]int, key string, def uint8) uint8 {
	if v, ok := m[key]; ok && v >= 0 && v <= 255 {
		return uint8(v)
	}
	return def
}

// Default returns the documented defaults: slow=1000ms, normal=100ms,
// min=100ms, spawn=15000ms, a random 10-hex-char name, and a random RGB
// color with alpha 0.
func Default() Config {
	return Config{
		Name:         randomHexString(10),
		URL:          "atari.icad.puc-rio.br",
		SlowTimer:    1000 * time.Millisecond,
		NormalTimer:  100 * time.Millisecond,
		MinTimer:     100 * time.Millisecond,
		SpawnTimer:   15000 * time.Millisecond,
		DefaultColor: randomColor(),
		Graphics:     true,
	}
}

// Load reads and validates filename, falling back to Default on any
// error (missing file, malformed JSON, schema violation) — the caller
// is expected to log the fallback.
func Load(filename string) (Config, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}

	if err := validateSchema(raw); err != nil {
		return Default(), fmt.Errorf("validate config: %w", err)
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return Default(), fmt.Errorf("decode config: %w", err)
	}

	return FromFile(f), nil
}

func validateSchema(raw []byte) error {
	sch, err := jsonschema.CompileString("config.schema.json", schemaJSON)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode for validation: %w", err)
	}
	return sch.Validate(doc)
}

func randomHexString(size int) string {
	const charset = "0123456789abcdef"
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failures are effectively impossible on supported
		// platforms; fall back to a weaker source rather than panic.
		for i := range buf {
			buf[i] = byte(mathrand.Intn(len(charset)))
		}
	}
	out := make([]byte, size)
	for i, b := range buf {
		out[i] = charset[int(b)%len(charset)]
	}
	return string(out)
}

func randomColor() Color {
	return Color{
		R: uint8(mathrand.Intn(255)),
		G: uint8(mathrand.Intn(255)),
		B: uint8(mathrand.Intn(255)),
		A: 0,
	}
}
