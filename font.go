package img2ascii

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultFontSize is the point size used when none is configured.
	DefaultFontSize = 14.0

	// BuiltinGoMono names the embedded Go Mono TrueType font.
	BuiltinGoMono = "gomono"
	// BuiltinInconsolata names the embedded 8x16 Inconsolata bitmap face.
	// Its size is fixed; the requested point size is ignored.
	BuiltinInconsolata = "inconsolata"

	// monospacedChar is measured to derive the glyph cell size.
	monospacedChar = ' '
)

// Rasterizer measures and renders single characters of one font at one
// size. Render draws the character left-aligned at the origin, foreground
// 255 on a background of 0, clipped to width x height. It returns an error
// wrapping ErrGlyphMissing when the font has no glyph for r.
type Rasterizer interface {
	Measure(r rune) (width, height int)
	Render(r rune, width, height int) (*image.Gray, error)
}

// Font is a Rasterizer backed by a font.Face. It is safe for concurrent
// use.
type Font struct {
	name     string
	face     font.Face
	hasGlyph func(rune) bool
	// lineHeight, when set, replaces ascent plus descent as the cell
	// height.
	lineHeight int

	mu sync.Mutex
}

// LoadFont loads the font at path and prepares a face of the given point
// size. Path may also be one of the builtin names (BuiltinGoMono,
// BuiltinInconsolata).
//
// TrueType files (.ttf) go through freetype, like the rest of this
// package's TrueType handling. Collections (.ttc, .otc) and CFF-flavoured
// OpenType (.otf) go through x/image's sfnt parser, using the first face
// of a collection. A .ttf that freetype rejects is retried with sfnt.
//
// All failures are returned as *FontLoadError.
func LoadFont(path string, size float64) (*Font, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	switch path {
	case BuiltinGoMono:
		return parseTrueType(path, gomono.TTF, size)
	case BuiltinInconsolata:
		return newBasicFont(path, inconsolata.Regular8x16), nil
	}

	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttc", ".otc":
		return parseCollection(path, fontBytes, size)
	case ".otf":
		return parseOpenType(path, fontBytes, size)
	}

	f, err := parseTrueType(path, fontBytes, size)
	if err == nil {
		return f, nil
	}
	if f, otErr := parseOpenType(path, fontBytes, size); otErr == nil {
		return f, nil
	}
	return nil, err
}

func parseTrueType(name string, fontBytes []byte, size float64) (*Font, error) {
	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, &FontLoadError{Path: name, Err: err}
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return &Font{
		name: name,
		face: face,
		hasGlyph: func(r rune) bool {
			return ttf.Index(r) != 0
		},
	}, nil
}

func parseCollection(name string, fontBytes []byte, size float64) (*Font, error) {
	coll, err := opentype.ParseCollection(fontBytes)
	if err != nil {
		return nil, &FontLoadError{Path: name, Err: err}
	}
	if coll.NumFonts() == 0 {
		return nil, &FontLoadError{Path: name, Err: fmt.Errorf("collection contains no fonts")}
	}
	otf, err := coll.Font(0)
	if err != nil {
		return nil, &FontLoadError{Path: name, Err: err}
	}
	return newSfntFont(name, otf, size)
}

func parseOpenType(name string, fontBytes []byte, size float64) (*Font, error) {
	otf, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, &FontLoadError{Path: name, Err: err}
	}
	return newSfntFont(name, otf, size)
}

func newSfntFont(name string, otf *sfnt.Font, size float64) (*Font, error) {
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, &FontLoadError{Path: name, Err: err}
	}
	var buf sfnt.Buffer
	return &Font{
		name: name,
		face: face,
		hasGlyph: func(r rune) bool {
			idx, err := otf.GlyphIndex(&buf, r)
			return err == nil && idx != 0
		},
	}, nil
}

func newBasicFont(name string, face *basicfont.Face) *Font {
	return &Font{
		name:       name,
		face:       face,
		lineHeight: face.Height,
		hasGlyph: func(r rune) bool {
			for _, rng := range face.Ranges {
				if rng.Low <= r && r < rng.High {
					return true
				}
			}
			return false
		},
	}
}

// Name returns the path or builtin name the font was loaded from.
func (f *Font) Name() string {
	return f.name
}

// Measure returns the advance width of r and the line height of the face,
// rounded up to whole pixels. The line height is ascent plus descent for
// scalable fonts and the face's fixed cell height for bitmap faces.
func (f *Font) Measure(r rune) (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	advance, ok := f.face.GlyphAdvance(r)
	if !ok {
		advance = 0
	}
	if f.lineHeight > 0 {
		return advance.Ceil(), f.lineHeight
	}
	metrics := f.face.Metrics()
	return advance.Ceil(), (metrics.Ascent + metrics.Descent).Ceil()
}

// Render draws r onto a blank width x height canvas with its baseline at
// the face's ascent, so the top of the line box sits at the origin.
func (f *Font) Render(r rune, width, height int) (*image.Gray, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.hasGlyph(r) {
		return nil, fmt.Errorf("%s: %w", f.name, ErrGlyphMissing)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: f.face,
		Dot:  fixed.Point26_6{X: 0, Y: f.face.Metrics().Ascent},
	}
	d.DrawString(string(r))
	return img, nil
}

// CellSize returns the glyph cell size for a monospaced rasterizer: the
// measured size of a space character.
func CellSize(r Rasterizer) (width, height int) {
	return r.Measure(monospacedChar)
}
