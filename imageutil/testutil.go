package imageutil

import (
	"math"
)

// CreateGradientGray creates a horizontal gradient test image running from
// 0 at the left edge to 255 at the right edge.
func CreateGradientGray(width, height int) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		row := img.Row(y)
		for x := 0; x < width; x++ {
			row[x] = uint8(255 * x / max(width-1, 1))
		}
	}
	return img
}

// CreateVerticalGradientGray creates a vertical gradient test image.
func CreateVerticalGradientGray(width, height int) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		v := uint8(255 * y / max(height-1, 1))
		row := img.Row(y)
		for x := range row {
			row[x] = v
		}
	}
	return img
}

// CreateCheckerboardGray creates a black and white checkerboard pattern.
func CreateCheckerboardGray(width, height, squareSize int) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		row := img.Row(y)
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				row[x] = 255
			}
		}
	}
	return img
}

// CreateSolidGray creates an image filled with a single intensity.
func CreateSolidGray(width, height int, v uint8) *GrayImage {
	img := NewGrayImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// CalculateMSEGray calculates the Mean Squared Error between two grayscale images.
func CalculateMSEGray(img1, img2 *GrayImage) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return math.MaxFloat64
	}

	width, height := img1.Width(), img1.Height()
	var sumSq float64
	count := float64(width * height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := float64(img1.GetGray(x, y)) - float64(img2.GetGray(x, y))
			sumSq += d * d
		}
	}

	return sumSq / count
}
