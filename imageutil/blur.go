package imageutil

import (
	"github.com/disintegration/gift"
)

// GaussianBlurGray applies a Gaussian blur with standard deviation radius
// to a grayscale image and returns a new image of the same size. Edge
// pixels are extended past the border. A radius <= 0 returns an unblurred
// copy.
func GaussianBlurGray(img *GrayImage, radius float64) *GrayImage {
	if radius <= 0 {
		return img.Clone()
	}
	g := gift.New(gift.GaussianBlur(float32(radius)))
	dst := NewGrayImage(img.Width(), img.Height())
	g.Draw(dst.Gray, img.Gray)
	return dst
}
