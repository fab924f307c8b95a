package imageutil

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DefaultPDFDPI is the resolution used when a PDF is given as the input
// image.
const DefaultPDFDPI = 96

// LoadPDFPage rasterizes one page (zero-based) of a PDF document.
func LoadPDFPage(path string, page int, dpi float64) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer doc.Close()

	if page < 0 || page >= doc.NumPage() {
		return nil, fmt.Errorf("pdf page %d out of range (document has %d)", page, doc.NumPage())
	}
	img, err := doc.ImageDPI(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render pdf page %d: %w", page, err)
	}
	return img, nil
}
