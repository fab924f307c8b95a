//go:build gocv

package imageutil

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

func init() {
	decodeFile = decodeGocv
}

// decodeGocv reads an image through OpenCV directly as grayscale, which
// widens the accepted formats to whatever the local OpenCV build supports.
func decodeGocv(path string) (image.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	if mat.Empty() {
		return nil, fmt.Errorf("could not read image from %s", path)
	}
	defer func(mat *gocv.Mat) {
		_ = mat.Close()
	}(&mat)

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	return img, nil
}
