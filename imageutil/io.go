package imageutil

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// decodeFile is the raster decoding backend. The gocv build replaces it
// with an OpenCV reader.
var decodeFile = decodeStd

// LoadImage loads an image from the specified path.
// Supports PNG, JPEG, GIF, TIFF, BMP and WebP, plus PDF documents whose
// first page is rasterized.
func LoadImage(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return LoadPDFPage(path, 0, DefaultPDFDPI)
	}
	return decodeFile(path)
}

func decodeStd(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// LoadGray loads an image as a single-channel 8-bit intensity grid and
// optionally resizes it. When scale or linespacing is non-zero the image
// is resized to ScaledSize(width, height, scale, linespacing) with the
// given interpolation; the linespacing factor stretches the image
// vertically to compensate for terminal cells that are taller than they
// are wide.
func LoadGray(path string, scale, linespacing float64, interp Interpolation) (*GrayImage, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	gray := GrayImageFromImage(img)
	if scale == 0 && linespacing == 0 {
		return gray, nil
	}
	if scale < 0 || linespacing < 0 {
		return nil, fmt.Errorf("invalid resize factors scale=%v linespacing=%v", scale, linespacing)
	}
	w, h := ScaledSize(gray.Width(), gray.Height(), scale, linespacing)
	if w == gray.Width() && h == gray.Height() {
		return gray, nil
	}
	return ResizeGray(gray, w, h, interp), nil
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
