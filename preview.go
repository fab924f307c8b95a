package img2ascii

import (
	"github.com/wbrown/img2ascii/imageutil"
)

// RenderPreview draws a canvas back into an image using the engine's glyph
// bitmaps, scale pixels per glyph pixel. With invert set the glyphs are
// drawn dark on light, which is how inverted output is meant to be viewed.
// Characters without a glyph render as empty cells.
func (e *Engine) RenderPreview(canvas *Canvas, invert bool, scale int) *imageutil.GrayImage {
	return renderPreview(e.glyphs, canvas, invert, scale)
}

// SavePreview renders a canvas preview and writes it as a PNG file.
func (e *Engine) SavePreview(canvas *Canvas, path string, invert bool, scale int) error {
	return imageutil.SavePNG(e.RenderPreview(canvas, invert, scale).Gray, path)
}

func renderPreview(gc *GlyphCache, canvas *Canvas, invert bool, scale int) *imageutil.GrayImage {
	if scale < 1 {
		scale = 1
	}
	cellW, cellH := gc.Width()*scale, gc.Height()*scale
	img := imageutil.NewGrayImage(canvas.Cols*cellW, canvas.Rows*cellH)

	bitmaps := make(map[rune]*imageutil.GrayImage, gc.Len())
	for _, g := range gc.glyphs {
		if invert {
			bitmaps[g.Char] = g.Bitmap.Invert()
		} else {
			bitmaps[g.Char] = g.Bitmap
		}
	}

	for row := 0; row < canvas.Rows; row++ {
		for col := 0; col < canvas.Cols; col++ {
			cell := img.Block(col*cellW, row*cellH, cellW, cellH)
			if bitmap, ok := bitmaps[canvas.At(row, col)]; ok {
				drawGlyph(cell, bitmap, scale)
			} else if invert {
				fillGray(cell, 255)
			}
		}
	}
	return img
}

// drawGlyph renders a glyph bitmap into a cell with scaling.
func drawGlyph(cell, bitmap *imageutil.GrayImage, scale int) {
	for y := 0; y < bitmap.Height(); y++ {
		for x := 0; x < bitmap.Width(); x++ {
			v := bitmap.GetGray(x, y)
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					cell.SetGrayValue(x*scale+sx, y*scale+sy, v)
				}
			}
		}
	}
}

// fillGray fills a cell with a single intensity.
func fillGray(cell *imageutil.GrayImage, v uint8) {
	for y := 0; y < cell.Height(); y++ {
		row := cell.Row(y)
		for x := range row {
			row[x] = v
		}
	}
}
