package img2ascii

import (
	"fmt"
	"os"

	"github.com/wbrown/img2ascii/imageutil"
	"gopkg.in/yaml.v3"
)

// Config is the file form of an engine and conversion setup.
type Config struct {
	Font               string   `yaml:"font"`
	FontSize           float64  `yaml:"font_size"`
	Strategy           string   `yaml:"strategy"`
	Mode               string   `yaml:"mode"`
	Charset            string   `yaml:"charset,omitempty"`
	// FilterRadius nil means DefaultFilterRadius; 0 disables the blur.
	FilterRadius       *float64 `yaml:"filter_radius,omitempty"`
	GlyphBlur          *float64 `yaml:"glyph_blur,omitempty"`
	BlankMissingGlyphs bool     `yaml:"blank_missing_glyphs"`
	RejectDegenerate   bool     `yaml:"reject_degenerate"`
	Workers            int      `yaml:"workers"`

	Scale         float64 `yaml:"scale"`
	Linespacing   float64 `yaml:"linespacing"`
	Invert        bool    `yaml:"invert"`
	Interpolation string  `yaml:"interpolation"`
}

// DefaultConfig returns the embedded Go Mono font at 14pt, brightness
// matching in ascii mode, and the DefaultConvertOptions.
func DefaultConfig() Config {
	radius := DefaultFilterRadius
	return Config{
		Font:          BuiltinGoMono,
		FontSize:      DefaultFontSize,
		Strategy:      StrategyBrightness.String(),
		Mode:          ModeASCII.String(),
		FilterRadius:  &radius,
		Linespacing:   DefaultLinespacing,
		Invert:        true,
		Interpolation: imageutil.InterpolationArea.String(),
	}
}

// LoadConfig reads a YAML config file. Keys absent from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig writes cfg as YAML.
func WriteConfig(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// EngineOptions translates the config into engine options.
func (c Config) EngineOptions() ([]EngineOption, error) {
	strategy, err := ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	mode, err := ParseRenderMode(c.Mode)
	if err != nil {
		return nil, err
	}
	opts := []EngineOption{
		WithStrategy(strategy),
		WithMode(mode),
		WithWorkers(c.Workers),
	}
	if c.FilterRadius != nil {
		opts = append(opts, WithFilterRadius(*c.FilterRadius))
	}
	if c.Charset != "" {
		cs, err := NewCharset(c.Charset)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCharset(cs))
	}
	if c.GlyphBlur != nil {
		opts = append(opts, WithGlyphBlur(*c.GlyphBlur))
	}
	if c.BlankMissingGlyphs {
		opts = append(opts, WithMissingGlyphs(MissingGlyphBlank))
	}
	if c.RejectDegenerate {
		opts = append(opts, WithDegeneratePolicy(DegenerateReject))
	}
	return opts, nil
}

// ConvertOptions returns the per-call options of the config.
func (c Config) ConvertOptions() (ConvertOptions, error) {
	interp, err := imageutil.ParseInterpolation(c.Interpolation)
	if err != nil {
		return ConvertOptions{}, err
	}
	return ConvertOptions{
		Scale:         c.Scale,
		Linespacing:   c.Linespacing,
		Invert:        c.Invert,
		Interpolation: interp,
	}, nil
}

// NewEngineFromConfig loads the configured font and builds an engine.
// Extra options are applied after the config's own.
func NewEngineFromConfig(c Config, extra ...EngineOption) (*Engine, error) {
	opts, err := c.EngineOptions()
	if err != nil {
		return nil, err
	}
	font, err := LoadFont(c.Font, c.FontSize)
	if err != nil {
		return nil, err
	}
	return NewEngine(font, append(opts, extra...)...)
}
