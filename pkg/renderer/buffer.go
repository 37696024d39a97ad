package renderer

import (
	"image"
	"image/color"
)

// PixelBuffer holds a rendered image in row-major order, top row first
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []RGB
}

// NewPixelBuffer creates a black buffer of the given size
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}
}

// At returns the pixel at column x, row y
func (b *PixelBuffer) At(x, y int) RGB {
	return b.Pix[y*b.Width+x]
}

// Set stores the pixel at column x, row y
func (b *PixelBuffer) Set(x, y int, c RGB) {
	b.Pix[y*b.Width+x] = c
}

// Image converts the buffer to an opaque RGBA image
func (b *PixelBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			p := b.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// SubImage copies the pixels inside bounds into a new image whose origin is (0, 0)
func (b *PixelBuffer) SubImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, b.Width, b.Height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := b.At(x, y)
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}
