package img2ascii

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Font != BuiltinGoMono || cfg.FontSize != 14 {
		t.Errorf("Unexpected font defaults %q %v", cfg.Font, cfg.FontSize)
	}
	if cfg.Strategy != "brightness" || cfg.Mode != "ascii" {
		t.Errorf("Unexpected strategy/mode defaults %q/%q", cfg.Strategy, cfg.Mode)
	}
	got, err := cfg.ConvertOptions()
	if err != nil {
		t.Fatalf("ConvertOptions failed: %v", err)
	}
	if got != DefaultConvertOptions() {
		t.Errorf("Config convert options %+v differ from defaults %+v", got, DefaultConvertOptions())
	}
	if cfg.FilterRadius == nil || *cfg.FilterRadius != DefaultFilterRadius {
		t.Errorf("Expected filter radius %v, got %v", DefaultFilterRadius, cfg.FilterRadius)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	blur := 0.5
	cfg := DefaultConfig()
	cfg.Strategy = "mindiff"
	cfg.Mode = "pixel"
	cfg.Charset = " .:#"
	cfg.GlyphBlur = &blur
	cfg.Workers = 3
	cfg.Scale = 0.25
	cfg.Invert = false
	cfg.Interpolation = "nearest"

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteConfig(cfg, path); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "strategy: mindiff\nscale: 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Strategy != "mindiff" || cfg.Scale != 0.5 {
		t.Errorf("File values not applied: %+v", cfg)
	}
	if cfg.Font != BuiltinGoMono || cfg.Linespacing != DefaultLinespacing || !cfg.Invert {
		t.Errorf("Absent keys should keep their defaults: %+v", cfg)
	}
	if cfg.FilterRadius == nil || *cfg.FilterRadius != DefaultFilterRadius {
		t.Errorf("Expected filter radius %v, got %v", DefaultFilterRadius, cfg.FilterRadius)
	}
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for a missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("strategy: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("Expected error for invalid YAML")
	}

	interp := DefaultConfig()
	interp.Interpolation = "cubic"
	if _, err := interp.ConvertOptions(); err == nil {
		t.Error("Expected error for an unknown interpolation")
	}

	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"strategy", func(c *Config) { c.Strategy = "fastest" }},
		{"mode", func(c *Config) { c.Mode = "sixel" }},
		{"charset", func(c *Config) { c.Charset = "aba" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			if _, err := cfg.EngineOptions(); err == nil {
				t.Error("Expected error")
			}
			if _, err := NewEngineFromConfig(cfg); err == nil {
				t.Error("Expected engine error")
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Font = filepath.Join(dir, "missing.ttf")
	var fontErr *FontLoadError
	if _, err := NewEngineFromConfig(cfg); !errors.As(err, &fontErr) {
		t.Errorf("Expected *FontLoadError, got %v", err)
	}
}

func TestNewEngineFromConfig(t *testing.T) {
	logger, _ := test.NewNullLogger()

	cfg := DefaultConfig()
	cfg.Strategy = "mindiff"
	cfg.Charset = " .:-=+*#%@"
	cfg.Workers = 2

	e, err := NewEngineFromConfig(cfg, WithLogger(logger))
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	if e.Strategy != StrategyMinDifference {
		t.Errorf("Expected mindiff strategy, got %v", e.Strategy)
	}
	if e.Workers != 2 {
		t.Errorf("Expected 2 workers, got %d", e.Workers)
	}
	if got := e.Matcher().Charset().String(); got != cfg.Charset {
		t.Errorf("Expected charset %q, got %q", cfg.Charset, got)
	}

	mono, err := LoadFont(BuiltinGoMono, cfg.FontSize)
	if err != nil {
		t.Fatal(err)
	}
	mw, mh := CellSize(mono)
	if w, h := e.Matcher().CellSize(); w != mw || h != mh {
		t.Errorf("Expected %dx%d cell, got %dx%d", mw, mh, w, h)
	}
}

func TestConfigFilterRadius(t *testing.T) {
	logger, _ := test.NewNullLogger()
	dir := t.TempDir()

	tests := []struct {
		name string
		yaml string
		want float64
	}{
		{"absent", "strategy: mindiff\ncharset: \" .#\"\n", DefaultFilterRadius},
		{"zero", "strategy: mindiff\ncharset: \" .#\"\nfilter_radius: 0\n", 0},
		{"set", "strategy: mindiff\ncharset: \" .#\"\nfilter_radius: 2.5\n", 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			e, err := NewEngineFromConfig(cfg, WithLogger(logger))
			if err != nil {
				t.Fatalf("Failed to create engine: %v", err)
			}
			if e.FilterRadius != tt.want {
				t.Errorf("Expected filter radius %v, got %v", tt.want, e.FilterRadius)
			}
		})
	}
}
