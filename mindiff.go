package img2ascii

import (
	"fmt"
	"math"

	"github.com/wbrown/img2ascii/imageutil"
)

// DefaultFilterRadius is the blur applied to glyphs before min-difference
// matching.
const DefaultFilterRadius = 1.3

// GlyphTensor stacks the glyph bitmaps of a charset, in charset order, as
// one flat slice of len(charset)*width*height intensities. The inverted
// variant holds 255-v for every value.
type GlyphTensor struct {
	charset  Charset
	width    int
	height   int
	normal   []uint8
	inverted []uint8
}

// PrecomputeMinDiff renders every character of cs with a Gaussian blur of
// filterRadius and stacks the results into a GlyphTensor.
func PrecomputeMinDiff(r Rasterizer, cs Charset, filterRadius float64, missing MissingGlyphPolicy) (*GlyphTensor, error) {
	gc, err := BuildGlyphCache(r, cs, GlyphOptions{BlurRadius: filterRadius, Missing: missing})
	if err != nil {
		return nil, err
	}
	return NewGlyphTensor(gc), nil
}

// NewGlyphTensor stacks the bitmaps of an existing cache.
func NewGlyphTensor(gc *GlyphCache) *GlyphTensor {
	size := gc.width * gc.height
	t := &GlyphTensor{
		charset:  gc.charset,
		width:    gc.width,
		height:   gc.height,
		normal:   make([]uint8, 0, size*gc.Len()),
		inverted: make([]uint8, size*gc.Len()),
	}
	for _, g := range gc.glyphs {
		t.normal = append(t.normal, g.Bitmap.Flatten()...)
	}
	for i, v := range t.normal {
		t.inverted[i] = 255 - v
	}
	return t
}

// Len returns the number of stacked glyphs.
func (t *GlyphTensor) Len() int { return len(t.charset) }

// Bitmap returns the flattened bitmap of glyph i in the chosen variant.
// The slice aliases the tensor and must not be modified.
func (t *GlyphTensor) Bitmap(i int, invert bool) []uint8 {
	size := t.width * t.height
	data := t.normal
	if invert {
		data = t.inverted
	}
	return data[i*size : (i+1)*size]
}

// Match returns the character whose glyph has the smallest Euclidean
// distance to block. Ties go to the lowest charset index. Match panics if
// block is not exactly the glyph size.
func (t *GlyphTensor) Match(block *imageutil.GrayImage, invert bool) rune {
	if block.Width() != t.width || block.Height() != t.height {
		panic(fmt.Sprintf("img2ascii: %dx%d block does not match %dx%d glyphs",
			block.Width(), block.Height(), t.width, t.height))
	}
	best, bestDist := 0, int64(math.MaxInt64)
	for i := range t.charset {
		d := t.sqDistance(block, i, invert, bestDist)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return t.charset[best]
}

// sqDistance is the squared L2 distance between block and glyph i. It
// stops early, returning a value >= limit, once the running sum reaches
// limit.
func (t *GlyphTensor) sqDistance(block *imageutil.GrayImage, i int, invert bool, limit int64) int64 {
	glyph := t.Bitmap(i, invert)
	var sum int64
	for y := 0; y < t.height; y++ {
		row := block.Row(y)
		g := glyph[y*t.width : (y+1)*t.width]
		for x, v := range row {
			d := int64(v) - int64(g[x])
			sum += d * d
		}
		if sum >= limit {
			return sum
		}
	}
	return sum
}
