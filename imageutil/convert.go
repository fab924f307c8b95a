package imageutil

// ToGrayscale converts an RGBA image to grayscale using the standard
// luminance formula: Y = 0.299*R + 0.587*G + 0.114*B
// This is the ITU-R 601-2 transform most imaging libraries use for their
// 8-bit "L" mode.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)
	b := img.Bounds()

	for y := 0; y < height; y++ {
		row := gray.Row(y)
		for x := 0; x < width; x++ {
			c := img.RGBAAt(b.Min.X+x, b.Min.Y+y)
			// Integer math, rounded: (299*R + 587*G + 114*B + 500) / 1000
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			row[x] = uint8(lum)
		}
	}

	return gray
}
