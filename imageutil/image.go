// Package imageutil provides the pure Go image plumbing used by img2ascii:
// decoding, grayscale conversion, resizing and blurring of intensity grids.
package imageutil

import (
	"image"
	"image/color"
)

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// RGBAImageFromImage converts any image.Image to an opaque RGBAImage
// anchored at the origin. Alpha is dropped: each pixel keeps its
// un-premultiplied color, so a fully transparent white pixel stays white.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	rgba := NewRGBAImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			rgba.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return rgba
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GrayImage wraps image.Gray for single-channel intensity grids. Glyph
// bitmaps, image blocks and whole source images are all GrayImages.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a new GrayImage with the specified dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// WrapGray wraps an existing *image.Gray without copying. A nil image
// yields an empty 0x0 GrayImage.
func WrapGray(g *image.Gray) *GrayImage {
	if g == nil {
		return NewGrayImage(0, 0)
	}
	return &GrayImage{Gray: g}
}

// GrayImageFromImage converts any image.Image to GrayImage. Color images go
// through ToGrayscale so that the luminance weights match the rest of the
// pipeline. Transparency is ignored.
func GrayImageFromImage(img image.Image) *GrayImage {
	switch src := img.(type) {
	case *image.Gray:
		return WrapGray(src).Clone()
	case *image.RGBA:
		if src.Opaque() {
			return ToGrayscale(&RGBAImage{RGBA: src})
		}
	}
	return ToGrayscale(RGBAImageFromImage(img))
}

// Width returns the image width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the grayscale value at (x, y), relative to the image
// origin.
func (img *GrayImage) GetGray(x, y int) uint8 {
	b := img.Bounds()
	return img.GrayAt(b.Min.X+x, b.Min.Y+y).Y
}

// SetGrayValue sets the grayscale value at (x, y), relative to the image
// origin.
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	b := img.Bounds()
	img.Gray.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: v})
}

// Row returns the pixels of row y (relative to the origin) as a slice that
// aliases the underlying buffer.
func (img *GrayImage) Row(y int) []uint8 {
	b := img.Bounds()
	off := img.PixOffset(b.Min.X, b.Min.Y+y)
	return img.Pix[off : off+b.Dx()]
}

// Block returns the width x height region whose top-left corner is (x, y).
// The block shares pixels with img; it is a view, not a copy.
func (img *GrayImage) Block(x, y, width, height int) *GrayImage {
	b := img.Bounds()
	r := image.Rect(b.Min.X+x, b.Min.Y+y, b.Min.X+x+width, b.Min.Y+y+height)
	return &GrayImage{Gray: img.SubImage(r).(*image.Gray)}
}

// Mean returns the arithmetic mean of all intensity values, or 0 for an
// empty image.
func (img *GrayImage) Mean() float64 {
	w, h := img.Width(), img.Height()
	if w == 0 || h == 0 {
		return 0
	}
	var sum uint64
	for y := 0; y < h; y++ {
		for _, v := range img.Row(y) {
			sum += uint64(v)
		}
	}
	return float64(sum) / float64(w*h)
}

// Flatten copies the pixels in row-major order into a tightly packed
// slice of length Width()*Height().
func (img *GrayImage) Flatten() []uint8 {
	w, h := img.Width(), img.Height()
	out := make([]uint8, 0, w*h)
	for y := 0; y < h; y++ {
		out = append(out, img.Row(y)...)
	}
	return out
}

// Invert returns a new image with every value v replaced by 255-v.
func (img *GrayImage) Invert() *GrayImage {
	w, h := img.Width(), img.Height()
	dst := NewGrayImage(w, h)
	for y := 0; y < h; y++ {
		row := dst.Row(y)
		for x, v := range img.Row(y) {
			row[x] = 255 - v
		}
	}
	return dst
}

// Clone creates a deep copy of the image anchored at the origin.
func (img *GrayImage) Clone() *GrayImage {
	w, h := img.Width(), img.Height()
	clone := NewGrayImage(w, h)
	for y := 0; y < h; y++ {
		copy(clone.Row(y), img.Row(y))
	}
	return clone
}
