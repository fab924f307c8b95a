package img2ascii

import (
	"errors"
	"image"
	"testing"

	"github.com/wbrown/img2ascii/imageutil"
)

func TestBuildGlyphCache(t *testing.T) {
	gc, err := BuildGlyphCache(spaceAB(), MustCharset(" AB"), GlyphOptions{})
	if err != nil {
		t.Fatalf("Failed to build cache: %v", err)
	}
	if gc.Width() != 4 || gc.Height() != 4 {
		t.Errorf("Expected 4x4 glyphs, got %dx%d", gc.Width(), gc.Height())
	}
	if gc.Len() != 3 {
		t.Errorf("Expected 3 glyphs, got %d", gc.Len())
	}

	for i, g := range gc.Glyphs() {
		if g.Char != rune(" AB"[i]) {
			t.Errorf("Glyph %d is %q, want charset order", i, g.Char)
		}
		if g.Bitmap.Width() != 4 || g.Bitmap.Height() != 4 {
			t.Errorf("Glyph %q is %dx%d", g.Char, g.Bitmap.Width(), g.Bitmap.Height())
		}
	}

	a, ok := gc.Glyph('A')
	if !ok {
		t.Fatal("Expected glyph for A")
	}
	if a.Bitmap.Mean() != 127.5 {
		t.Errorf("Expected A mean 127.5, got %v", a.Bitmap.Mean())
	}
	if _, ok := gc.Glyph('Z'); ok {
		t.Error("Z is not in the charset")
	}
}

func TestBuildGlyphCacheBlur(t *testing.T) {
	f := &fakeRasterizer{width: 4, height: 4, glyphs: map[rune]func(x, y int) uint8{'.': dot}}
	sharp, err := BuildGlyphCache(f, MustCharset("."), GlyphOptions{})
	if err != nil {
		t.Fatal(err)
	}
	blurred, err := BuildGlyphCache(f, MustCharset("."), GlyphOptions{BlurRadius: 1.0})
	if err != nil {
		t.Fatal(err)
	}
	s, _ := sharp.Glyph('.')
	b, _ := blurred.Glyph('.')
	if imageutil.CalculateMSEGray(s.Bitmap, b.Bitmap) == 0 {
		t.Error("Blurred glyph should differ from the sharp one")
	}
	if b.Bitmap.GetGray(2, 1) == 0 {
		t.Error("Blur should spread the dot to its neighbour")
	}
}

func TestBuildGlyphCacheMissingGlyph(t *testing.T) {
	cs := MustCharset(" A?")

	_, err := BuildGlyphCache(spaceAB(), cs, GlyphOptions{})
	var renderErr *GlyphRenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Expected *GlyphRenderError, got %v", err)
	}
	if renderErr.Char != '?' {
		t.Errorf("Expected failing char '?', got %q", renderErr.Char)
	}
	if !errors.Is(err, ErrGlyphMissing) {
		t.Error("GlyphRenderError should wrap ErrGlyphMissing")
	}

	gc, err := BuildGlyphCache(spaceAB(), cs, GlyphOptions{Missing: MissingGlyphBlank})
	if err != nil {
		t.Fatalf("Blank policy should not fail: %v", err)
	}
	q, ok := gc.Glyph('?')
	if !ok {
		t.Fatal("Blank policy should still cache '?'")
	}
	if q.Bitmap.Mean() != 0 {
		t.Errorf("Missing glyph should be blank, mean %v", q.Bitmap.Mean())
	}
}

// wrongSize renders bitmaps one pixel too wide.
type wrongSize struct{ fakeRasterizer }

func (w *wrongSize) Render(r rune, width, height int) (*image.Gray, error) {
	return image.NewGray(image.Rect(0, 0, width+1, height)), nil
}

func TestBuildGlyphCacheErrors(t *testing.T) {
	var renderErr *GlyphRenderError

	empty := &fakeRasterizer{width: 0, height: 4}
	if _, err := BuildGlyphCache(empty, MustCharset("a"), GlyphOptions{}); !errors.As(err, &renderErr) {
		t.Errorf("Empty cell: expected *GlyphRenderError, got %v", err)
	}

	bad := &wrongSize{fakeRasterizer{width: 4, height: 4}}
	if _, err := BuildGlyphCache(bad, MustCharset("a"), GlyphOptions{}); !errors.As(err, &renderErr) {
		t.Errorf("Wrong size: expected *GlyphRenderError, got %v", err)
	}

	var csErr *CharsetError
	if _, err := BuildGlyphCache(spaceAB(), Charset("AA"), GlyphOptions{}); !errors.As(err, &csErr) {
		t.Errorf("Duplicate: expected *CharsetError, got %v", err)
	}
	if _, err := BuildGlyphCache(spaceAB(), nil, GlyphOptions{}); !errors.As(err, &csErr) {
		t.Errorf("Empty charset: expected *CharsetError, got %v", err)
	}
}

func TestGlyphCacheWithFont(t *testing.T) {
	mono, err := LoadFont(BuiltinGoMono, 14)
	if err != nil {
		t.Fatalf("Failed to load Go Mono: %v", err)
	}
	gc, err := BuildGlyphCache(mono, MustCharset(FullCharset), GlyphOptions{})
	if err != nil {
		t.Fatalf("Failed to build cache: %v", err)
	}

	w, h := CellSize(mono)
	for _, g := range gc.Glyphs() {
		if g.Bitmap.Width() != w || g.Bitmap.Height() != h {
			t.Errorf("Glyph %q is %dx%d, want %dx%d", g.Char, g.Bitmap.Width(), g.Bitmap.Height(), w, h)
		}
	}

	space, _ := gc.Glyph(' ')
	period, _ := gc.Glyph('.')
	em, _ := gc.Glyph('M')
	if space.Bitmap.Mean() != 0 {
		t.Errorf("Space should be blank, mean %v", space.Bitmap.Mean())
	}
	if !(period.Bitmap.Mean() < em.Bitmap.Mean()) {
		t.Errorf("Expected '.' (%v) darker than 'M' (%v)", period.Bitmap.Mean(), em.Bitmap.Mean())
	}
}
