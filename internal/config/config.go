// internal/config/config.go
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const (
	MaxDeltaTime  = 0.06 // секунды, верхняя граница шага кадра
	ClickCooldown = 300  // мс между кликами по меню
	ZoomStep      = 1.1

	MessagePadding  = 10
	TooltipPadding  = 10
	ResourcesTop    = 10
	ResourcesRight  = 10
	MessageTimeout  = 5000 // мс
	DefaultFontSize = 16
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

//go:embed default.yaml
var defaultYAML []byte

//go:embed schema.json
var schemaJSON string

type Screen struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Grid struct {
	Topology string   `yaml:"topology"`
	Rows     int      `yaml:"rows"`
	Cols     int      `yaml:"cols"`
	CellSize float64  `yaml:"cell_size"`
	MinScale float64  `yaml:"min_scale"`
	MaxScale float64  `yaml:"max_scale"`
	Empty    [3]uint8 `yaml:"empty_color"`
}

type Resource struct {
	Name    string  `yaml:"name"`
	Glyph   string  `yaml:"glyph"`
	Initial float64 `yaml:"initial"`
}

type Messages struct {
	TimeoutMs int `yaml:"timeout_ms"`
}

type Font struct {
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

type Simulation struct {
	Seed            int64   `yaml:"seed"`
	MaxDeltaTime    float64 `yaml:"max_delta_time"`
	ClickCooldownMs int     `yaml:"click_cooldown_ms"`
	ZoomStep        float64 `yaml:"zoom_step"`
}

// Config is everything supplied once at startup.
type Config struct {
	Screen     Screen            `yaml:"screen"`
	Background [3]uint8          `yaml:"background"`
	Grid       Grid              `yaml:"grid"`
	Resources  []Resource        `yaml:"resources"`
	Images     map[string]string `yaml:"images"`
	Messages   Messages          `yaml:"messages"`
	Font       Font              `yaml:"font"`
	Simulation Simulation        `yaml:"simulation"`
	LogLevel   string            `yaml:"log_level"`
}

// MessageTimeout returns how long overlay messages stay up.
func (c Config) MessageTimeout() time.Duration {
	return time.Duration(c.Messages.TimeoutMs) * time.Millisecond
}

// ClickCooldown returns the minimum time between accepted clicks.
func (c Config) ClickCooldown() time.Duration {
	return time.Duration(c.Simulation.ClickCooldownMs) * time.Millisecond
}

// SlogLevel converts LogLevel for log/slog. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Glyphs maps resource names to their display glyphs.
func (c Config) Glyphs() map[string]string {
	out := make(map[string]string, len(c.Resources))
	for _, r := range c.Resources {
		out[r.Name] = r.Glyph
	}
	return out
}

// Default returns the built-in farm configuration.
func Default() Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("config: built-in default is broken: %v", err))
	}
	return cfg
}

// Load reads and validates a YAML config file.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates raw YAML against the schema, decodes it and fills in
// defaults.
func Parse(raw []byte) (Config, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}
	if err := validate(doc); err != nil {
		return Config{}, err
	}

	cfg := defaults()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}
	if err := cfg.check(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Screen:     Screen{Width: 1200, Height: 900, Title: "Tile Sandbox"},
		Background: [3]uint8{58, 170, 80},
		Grid: Grid{
			Topology: "square",
			Rows:     10,
			Cols:     10,
			CellSize: 80,
			MinScale: 0.25,
			MaxScale: 4,
			Empty:    [3]uint8{247, 245, 165},
		},
		Messages: Messages{TimeoutMs: MessageTimeout},
		Font:     Font{Size: DefaultFontSize},
		Simulation: Simulation{
			MaxDeltaTime:    MaxDeltaTime,
			ClickCooldownMs: ClickCooldown,
			ZoomStep:        ZoomStep,
		},
		LogLevel: "info",
	}
}

// check covers the rules the schema can't express.
func (c Config) check() error {
	if c.Grid.MinScale > c.Grid.MaxScale {
		return fmt.Errorf("%w: grid.min_scale %v > grid.max_scale %v", ErrInvalid, c.Grid.MinScale, c.Grid.MaxScale)
	}
	seen := make(map[string]bool, len(c.Resources))
	for _, r := range c.Resources {
		if seen[r.Name] {
			return fmt.Errorf("%w: resource %q declared twice", ErrInvalid, r.Name)
		}
		seen[r.Name] = true
	}
	return nil
}

var schema *jsonschema.Schema

func validate(doc any) error {
	if schema == nil {
		s, err := jsonschema.CompileString("config.schema.json", schemaJSON)
		if err != nil {
			return fmt.Errorf("compile schema: %w", err)
		}
		schema = s
	}
	// The validator wants JSON-shaped values; go through encoding/json so
	// YAML ints and maps come out as float64 and map[string]any.
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
