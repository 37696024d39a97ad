package output

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// WritePPM writes buf as a plain-text P3 PPM: a "P3\n<w> <h>\n255\n" header
// followed by one "<r> <g> <b>\n" line per pixel, top row first
func WritePPM(w io.Writer, buf *renderer.PixelBuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", buf.Width, buf.Height); err != nil {
		return fmt.Errorf("writing ppm header: %w", err)
	}

	line := make([]byte, 0, 12)
	for _, p := range buf.Pix {
		line = strconv.AppendUint(line[:0], uint64(p.R), 10)
		line = append(line, ' ')
		line = strconv.AppendUint(line, uint64(p.G), 10)
		line = append(line, ' ')
		line = strconv.AppendUint(line, uint64(p.B), 10)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("writing ppm pixels: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing ppm: %w", err)
	}
	return nil
}

// BufferFromImage quantizes any image into a pixel buffer, dropping alpha
func BufferFromImage(img image.Image) *renderer.PixelBuffer {
	bounds := img.Bounds()
	buf := renderer.NewPixelBuffer(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			buf.Set(x-bounds.Min.X, y-bounds.Min.Y, renderer.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
		}
	}
	return buf
}
