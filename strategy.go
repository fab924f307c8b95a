package img2ascii

import (
	"fmt"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

// GlyphMatchingStrategy resolves a glyph-sized image block to the best
// character of a charset. Implementations hold only immutable precomputed
// state, so Match may be called from many goroutines at once.
type GlyphMatchingStrategy interface {
	// Match returns the best character for block, which must be exactly
	// CellSize pixels. invert selects whether dark image regions map to
	// dense glyphs.
	Match(block *imageutil.GrayImage, invert bool) rune
	// CellSize returns the glyph width and height in pixels.
	CellSize() (width, height int)
	// Charset returns the characters the strategy chooses from.
	Charset() Charset
}

// StrategyKind names a matching strategy.
type StrategyKind int

const (
	// StrategyBrightness matches by mean intensity.
	StrategyBrightness StrategyKind = iota
	// StrategyMinDifference matches by pixelwise Euclidean distance.
	StrategyMinDifference
)

func (k StrategyKind) String() string {
	switch k {
	case StrategyBrightness:
		return "brightness"
	case StrategyMinDifference:
		return "mindiff"
	}
	return fmt.Sprintf("StrategyKind(%d)", int(k))
}

// ParseStrategy parses a strategy name as accepted on the command line.
func ParseStrategy(s string) (StrategyKind, error) {
	switch strings.ToLower(s) {
	case "brightness", "":
		return StrategyBrightness, nil
	case "mindiff", "min-difference", "mindifference":
		return StrategyMinDifference, nil
	}
	return 0, fmt.Errorf("unknown strategy %q (options are brightness, mindiff)", s)
}

// DefaultCharset returns the charset a strategy uses unless configured
// otherwise.
func (k StrategyKind) DefaultCharset() Charset {
	if k == StrategyMinDifference {
		return MustCharset(FullCharset)
	}
	return MustCharset(SymbolCharset)
}

// BrightnessMatching maps a block to the character whose scaled glyph
// brightness is the nearest value at or above the block's mean intensity.
type BrightnessMatching struct {
	glyphs *GlyphCache
	index  *BrightnessIndex
}

// NewBrightnessMatching precomputes the brightness index of a glyph cache.
func NewBrightnessMatching(gc *GlyphCache, policy DegeneratePolicy) (*BrightnessMatching, error) {
	index, err := PrecomputeBrightness(gc, policy)
	if err != nil {
		return nil, err
	}
	return &BrightnessMatching{glyphs: gc, index: index}, nil
}

func (m *BrightnessMatching) Match(block *imageutil.GrayImage, invert bool) rune {
	return m.index.Match(block, invert)
}

func (m *BrightnessMatching) CellSize() (int, int) {
	return m.glyphs.Width(), m.glyphs.Height()
}

func (m *BrightnessMatching) Charset() Charset {
	return m.glyphs.Charset()
}

// Index returns the precomputed brightness index.
func (m *BrightnessMatching) Index() *BrightnessIndex {
	return m.index
}

// MinDifferenceMatching maps a block to the character whose blurred glyph
// bitmap is closest in Euclidean distance. It compares every glyph against
// every block, trading throughput for fidelity. Match panics on a block that
// is not exactly CellSize.
type MinDifferenceMatching struct {
	tensor *GlyphTensor
}

// NewMinDifferenceMatching renders cs with a blur of filterRadius and
// stacks the glyphs for matching.
func NewMinDifferenceMatching(r Rasterizer, cs Charset, filterRadius float64, missing MissingGlyphPolicy) (*MinDifferenceMatching, error) {
	tensor, err := PrecomputeMinDiff(r, cs, filterRadius, missing)
	if err != nil {
		return nil, err
	}
	return &MinDifferenceMatching{tensor: tensor}, nil
}

func (m *MinDifferenceMatching) Match(block *imageutil.GrayImage, invert bool) rune {
	return m.tensor.Match(block, invert)
}

func (m *MinDifferenceMatching) CellSize() (int, int) {
	return m.tensor.width, m.tensor.height
}

func (m *MinDifferenceMatching) Charset() Charset {
	return m.tensor.charset
}

// Tensor returns the stacked glyph bitmaps.
func (m *MinDifferenceMatching) Tensor() *GlyphTensor {
	return m.tensor
}
