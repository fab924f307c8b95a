package img2ascii

import (
	"errors"
	"fmt"

	"github.com/wbrown/img2ascii/imageutil"
)

// MissingGlyphPolicy decides what happens when the font cannot render a
// charset character.
type MissingGlyphPolicy int

const (
	// MissingGlyphFail aborts cache construction with a *GlyphRenderError.
	MissingGlyphFail MissingGlyphPolicy = iota
	// MissingGlyphBlank substitutes an all-zero bitmap.
	MissingGlyphBlank
)

// GlyphOptions controls how glyphs are rendered into a cache.
type GlyphOptions struct {
	// BlurRadius, when positive, applies a Gaussian blur of that radius to
	// every rendered glyph.
	BlurRadius float64
	// Missing selects the policy for characters the font cannot render.
	Missing MissingGlyphPolicy
}

// Glyph pairs a character with its rendered bitmap.
type Glyph struct {
	Char   rune
	Bitmap *imageutil.GrayImage
}

// GlyphCache holds one rendered bitmap per charset character. Every
// bitmap has the same dimensions. A cache is immutable once built and may
// be read from any number of goroutines.
type GlyphCache struct {
	charset Charset
	glyphs  []Glyph
	index   map[rune]int
	width   int
	height  int
}

// BuildGlyphCache renders every character of cs with r onto a canvas the
// size of the font's space character, optionally blurring each bitmap.
func BuildGlyphCache(r Rasterizer, cs Charset, opts GlyphOptions) (*GlyphCache, error) {
	if len(cs) == 0 {
		return nil, &CharsetError{Reason: "empty"}
	}
	width, height := CellSize(r)
	if width <= 0 || height <= 0 {
		return nil, &GlyphRenderError{
			Char: monospacedChar,
			Err:  fmt.Errorf("font reports an empty %dx%d cell", width, height),
		}
	}

	gc := &GlyphCache{
		charset: cs,
		glyphs:  make([]Glyph, 0, len(cs)),
		index:   make(map[rune]int, len(cs)),
		width:   width,
		height:  height,
	}
	for _, char := range cs {
		if _, dup := gc.index[char]; dup {
			return nil, &CharsetError{Charset: string(cs), Reason: fmt.Sprintf("duplicate character %q", char)}
		}
		bitmap, err := renderGlyph(r, char, width, height, opts)
		if err != nil {
			return nil, err
		}
		gc.index[char] = len(gc.glyphs)
		gc.glyphs = append(gc.glyphs, Glyph{Char: char, Bitmap: bitmap})
	}
	return gc, nil
}

// renderGlyph renders a single character and applies the blur, enforcing
// the cache's cell size.
func renderGlyph(r Rasterizer, char rune, width, height int, opts GlyphOptions) (*imageutil.GrayImage, error) {
	img, err := r.Render(char, width, height)
	if err != nil {
		if errors.Is(err, ErrGlyphMissing) && opts.Missing == MissingGlyphBlank {
			return imageutil.NewGrayImage(width, height), nil
		}
		return nil, &GlyphRenderError{Char: char, Err: err}
	}
	bitmap := imageutil.WrapGray(img)
	if bitmap.Width() != width || bitmap.Height() != height {
		return nil, &GlyphRenderError{
			Char: char,
			Err: fmt.Errorf("rendered %dx%d bitmap, want %dx%d",
				bitmap.Width(), bitmap.Height(), width, height),
		}
	}
	if opts.BlurRadius > 0 {
		return imageutil.GaussianBlurGray(bitmap, opts.BlurRadius), nil
	}
	return bitmap.Clone(), nil
}

// Width returns the glyph width in pixels.
func (gc *GlyphCache) Width() int { return gc.width }

// Height returns the glyph height in pixels.
func (gc *GlyphCache) Height() int { return gc.height }

// Charset returns the characters held by the cache, in order.
func (gc *GlyphCache) Charset() Charset { return gc.charset }

// Len returns the number of glyphs.
func (gc *GlyphCache) Len() int { return len(gc.glyphs) }

// Glyph returns the glyph for char.
func (gc *GlyphCache) Glyph(char rune) (Glyph, bool) {
	i, ok := gc.index[char]
	if !ok {
		return Glyph{}, false
	}
	return gc.glyphs[i], true
}

// Glyphs returns all glyphs in charset order. The bitmaps are shared with
// the cache and must not be modified.
func (gc *GlyphCache) Glyphs() []Glyph {
	out := make([]Glyph, len(gc.glyphs))
	copy(out, gc.glyphs)
	return out
}
