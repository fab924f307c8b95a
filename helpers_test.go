package img2ascii

import (
	"fmt"
	"image"

	"github.com/wbrown/img2ascii/imageutil"
)

// fakeRasterizer renders glyphs from pixel functions so matching can be
// tested without a real font.
type fakeRasterizer struct {
	width, height int
	glyphs        map[rune]func(x, y int) uint8
}

func (f *fakeRasterizer) Measure(r rune) (int, int) {
	return f.width, f.height
}

func (f *fakeRasterizer) Render(r rune, width, height int) (*image.Gray, error) {
	fill, ok := f.glyphs[r]
	if !ok {
		return nil, fmt.Errorf("fake: %w", ErrGlyphMissing)
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Pix[y*img.Stride+x] = fill(x, y)
		}
	}
	return img, nil
}

func solid(v uint8) func(x, y int) uint8 {
	return func(x, y int) uint8 { return v }
}

// leftHalf lights the left half of the cell.
func leftHalf(x, y int) uint8 {
	if x < 2 {
		return 255
	}
	return 0
}

// topHalf lights the top half of the cell.
func topHalf(x, y int) uint8 {
	if y < 2 {
		return 255
	}
	return 0
}

func dot(x, y int) uint8 {
	if x == 1 && y == 1 {
		return 255
	}
	return 0
}

// spaceAB is the " AB" charset: space empty, A half lit, B fully lit.
func spaceAB() *fakeRasterizer {
	return &fakeRasterizer{
		width: 4, height: 4,
		glyphs: map[rune]func(x, y int) uint8{
			' ': solid(0),
			'A': leftHalf,
			'B': solid(255),
		},
	}
}

// levels renders one solid glyph per intensity.
func levels(chars map[rune]uint8) *fakeRasterizer {
	f := &fakeRasterizer{width: 4, height: 4, glyphs: map[rune]func(x, y int) uint8{}}
	for r, v := range chars {
		f.glyphs[r] = solid(v)
	}
	return f
}

func blockFrom(width, height int, pix []uint8) *imageutil.GrayImage {
	img := imageutil.NewGrayImage(width, height)
	copy(img.Pix, pix)
	return img
}
