package img2ascii

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii/imageutil"
)

// RenderMode selects how glyphs are prepared for brightness matching.
type RenderMode int

const (
	// ModeASCII uses the glyphs exactly as rendered.
	ModeASCII RenderMode = iota
	// ModePixel blurs glyphs (radius PixelGlyphBlur) before measuring
	// their brightness, which evens out thin strokes.
	ModePixel
)

// PixelGlyphBlur is the glyph blur radius used by ModePixel.
const PixelGlyphBlur = 1.0

// DefaultLinespacing compensates for terminal cells being taller than
// they are wide.
const DefaultLinespacing = 0.8

func (m RenderMode) String() string {
	switch m {
	case ModeASCII:
		return "ascii"
	case ModePixel:
		return "pixel"
	}
	return fmt.Sprintf("RenderMode(%d)", int(m))
}

// ParseRenderMode parses a render mode name.
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(s) {
	case "ascii", "":
		return ModeASCII, nil
	case "pixel":
		return ModePixel, nil
	}
	return 0, fmt.Errorf("unknown render mode %q (options are ascii, pixel)", s)
}

// Engine converts images into character grids. It renders its glyph cache
// and precomputes matching features once, in NewEngine; after that it
// holds no mutable state and may convert many images concurrently.
type Engine struct {
	// Configuration options
	Strategy     StrategyKind
	Mode         RenderMode
	Charset      Charset
	FilterRadius float64
	Missing      MissingGlyphPolicy
	Degenerate   DegeneratePolicy
	Workers      int

	glyphBlur    float64
	glyphBlurSet bool

	// Built state (private)
	font     Rasterizer
	glyphs   *GlyphCache
	matcher  GlyphMatchingStrategy
	log      *logrus.Logger
	initTime time.Duration
}

// EngineOption is a functional option for configuring an Engine.
type EngineOption func(*Engine)

// WithStrategy selects the matching strategy.
func WithStrategy(kind StrategyKind) EngineOption {
	return func(e *Engine) {
		e.Strategy = kind
	}
}

// WithMode selects the render mode.
func WithMode(mode RenderMode) EngineOption {
	return func(e *Engine) {
		e.Mode = mode
	}
}

// WithCharset overrides the strategy's default charset.
func WithCharset(cs Charset) EngineOption {
	return func(e *Engine) {
		e.Charset = cs
	}
}

// WithFilterRadius sets the glyph blur used by min-difference matching.
func WithFilterRadius(radius float64) EngineOption {
	return func(e *Engine) {
		e.FilterRadius = radius
	}
}

// WithGlyphBlur sets the blur applied to the engine's glyph cache,
// overriding the render mode's default. Zero disables blurring.
func WithGlyphBlur(radius float64) EngineOption {
	return func(e *Engine) {
		e.glyphBlur = radius
		e.glyphBlurSet = true
	}
}

// WithMissingGlyphs sets the policy for characters the font cannot render.
func WithMissingGlyphs(policy MissingGlyphPolicy) EngineOption {
	return func(e *Engine) {
		e.Missing = policy
	}
}

// WithDegeneratePolicy sets how a single-brightness charset is handled.
func WithDegeneratePolicy(policy DegeneratePolicy) EngineOption {
	return func(e *Engine) {
		e.Degenerate = policy
	}
}

// WithWorkers bounds the number of goroutines used per conversion
// (0 = one per CPU).
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		e.Workers = n
	}
}

// WithLogger sets the logger. The default is logrus.StandardLogger().
func WithLogger(log *logrus.Logger) EngineOption {
	return func(e *Engine) {
		e.log = log
	}
}

// NewEngine builds the glyph cache for font and precomputes the features of
// the selected strategy. Defaults: StrategyBrightness, ModeASCII, the
// strategy's default charset, FilterRadius=1.3, MissingGlyphFail,
// DegenerateMidpoint.
func NewEngine(font Rasterizer, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		Strategy:     StrategyBrightness,
		Mode:         ModeASCII,
		FilterRadius: DefaultFilterRadius,
		font:         font,
		log:          logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.Charset == nil {
		e.Charset = e.Strategy.DefaultCharset()
	}
	if _, err := NewCharset(string(e.Charset)); err != nil {
		return nil, err
	}
	if !e.glyphBlurSet && e.Mode == ModePixel {
		e.glyphBlur = PixelGlyphBlur
	}

	begin := time.Now()
	glyphs, err := BuildGlyphCache(font, e.Charset, GlyphOptions{
		BlurRadius: e.glyphBlur,
		Missing:    e.Missing,
	})
	if err != nil {
		return nil, err
	}
	e.glyphs = glyphs

	switch e.Strategy {
	case StrategyBrightness:
		e.matcher, err = NewBrightnessMatching(glyphs, e.Degenerate)
	case StrategyMinDifference:
		e.matcher, err = NewMinDifferenceMatching(font, e.Charset, e.FilterRadius, e.Missing)
	default:
		err = fmt.Errorf("unknown strategy %v", e.Strategy)
	}
	if err != nil {
		return nil, err
	}
	e.initTime = time.Since(begin)

	e.log.WithFields(logrus.Fields{
		"strategy": e.Strategy,
		"mode":     e.Mode,
		"glyph":    fmt.Sprintf("%dx%d", glyphs.Width(), glyphs.Height()),
		"charset":  len(e.Charset),
		"elapsed":  e.initTime,
	}).Debug("glyph features precomputed")
	return e, nil
}

// Matcher returns the engine's matching strategy.
func (e *Engine) Matcher() GlyphMatchingStrategy {
	return e.matcher
}

// Glyphs returns the engine's glyph cache.
func (e *Engine) Glyphs() *GlyphCache {
	return e.glyphs
}

// InitDuration reports how long glyph rendering and feature precomputation
// took.
func (e *Engine) InitDuration() time.Duration {
	return e.initTime
}

// ConvertOptions are the per-call conversion parameters.
type ConvertOptions struct {
	// Scale resizes the input image; 0 leaves it unset.
	Scale float64
	// Linespacing stretches the image vertically; 0 leaves it unset.
	Linespacing float64
	// Invert maps dark image regions to dense glyphs, which suits dark
	// text on a light background.
	Invert bool
	// Interpolation is the resampling filter used when resizing.
	Interpolation imageutil.Interpolation
}

// DefaultConvertOptions returns no scaling, linespacing 0.8, inverted
// colors and area interpolation.
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{Linespacing: DefaultLinespacing, Invert: true}
}

// Convert loads the image at path and returns it as text, one line per
// canvas row. Load failures are returned as *ImageLoadError.
func (e *Engine) Convert(path string, opts ConvertOptions) (string, error) {
	canvas, err := e.ConvertFile(path, opts)
	if err != nil {
		return "", err
	}
	return canvas.String(), nil
}

// ConvertFile loads the image at path and matches it into a Canvas.
func (e *Engine) ConvertFile(path string, opts ConvertOptions) (*Canvas, error) {
	src, err := imageutil.LoadGray(path, opts.Scale, opts.Linespacing, opts.Interpolation)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: err}
	}
	return e.ConvertGray(src, opts.Invert), nil
}

// ConvertImage converts an already decoded image, applying the resize
// factors in opts.
func (e *Engine) ConvertImage(img image.Image, opts ConvertOptions) *Canvas {
	src := imageutil.GrayImageFromImage(img)
	if opts.Scale > 0 || opts.Linespacing > 0 {
		w, h := imageutil.ScaledSize(src.Width(), src.Height(), opts.Scale, opts.Linespacing)
		src = imageutil.ResizeGray(src, w, h, opts.Interpolation)
	}
	return e.ConvertGray(src, opts.Invert)
}

// ConvertGray matches an intensity grid without resizing it.
func (e *Engine) ConvertGray(src *imageutil.GrayImage, invert bool) *Canvas {
	begin := time.Now()
	canvas := ImageToCharacters(src, e.matcher, invert, e.Workers)
	e.log.WithFields(logrus.Fields{
		"source":  fmt.Sprintf("%dx%d", src.Width(), src.Height()),
		"canvas":  fmt.Sprintf("%dx%d", canvas.Cols, canvas.Rows),
		"invert":  invert,
		"elapsed": time.Since(begin),
	}).Debug("image matched")
	return canvas
}
