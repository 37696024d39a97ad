package output

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Scale resizes img by factor. Whole-number enlargements keep hard pixel
// edges, everything else is resampled with Catmull-Rom.
func Scale(img image.Image, factor float64) (*image.RGBA, error) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("scale factor %g must be positive", factor)
	}

	src := img.Bounds()
	width := max(1, int(math.Round(float64(src.Dx())*factor)))
	height := max(1, int(math.Round(float64(src.Dy())*factor)))
	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	var scaler draw.Scaler = draw.CatmullRom
	if factor >= 1 && factor == math.Trunc(factor) {
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)

	return dst, nil
}
