package img2ascii

import (
	"errors"
	"fmt"
)

// ErrGlyphMissing is returned by a Rasterizer when the font has no glyph
// for the requested character.
var ErrGlyphMissing = errors.New("glyph not defined by font")

// FontLoadError reports a font resource that could not be opened or
// parsed.
type FontLoadError struct {
	Path string
	Err  error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("could not load font %q: %v", e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// ImageLoadError reports an image resource that could not be read or
// decoded.
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("could not load image %q: %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// GlyphRenderError reports a charset character that the font could not
// render while building a glyph cache.
type GlyphRenderError struct {
	Char rune
	Err  error
}

func (e *GlyphRenderError) Error() string {
	return fmt.Sprintf("could not render glyph %q: %v", e.Char, e.Err)
}

func (e *GlyphRenderError) Unwrap() error { return e.Err }

// DegenerateCharsetError is returned when every glyph of a charset has the
// same brightness, so brightness matching cannot tell them apart, and the
// DegenerateReject policy is in effect.
type DegenerateCharsetError struct {
	Brightness float64
}

func (e *DegenerateCharsetError) Error() string {
	return fmt.Sprintf("charset has a single brightness level (%.2f)", e.Brightness)
}

// CharsetError reports an invalid charset definition.
type CharsetError struct {
	Charset string
	Reason  string
}

func (e *CharsetError) Error() string {
	return fmt.Sprintf("invalid charset %q: %s", e.Charset, e.Reason)
}
