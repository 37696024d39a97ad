package output

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

func TestWritePPM_ExactBytes(t *testing.T) {
	buf := renderer.NewPixelBuffer(2, 2)
	buf.Set(0, 0, renderer.RGB{R: 255, G: 0, B: 0})
	buf.Set(1, 0, renderer.RGB{R: 0, G: 255, B: 0})
	buf.Set(0, 1, renderer.RGB{R: 0, G: 0, B: 255})
	buf.Set(1, 1, renderer.RGB{R: 7, G: 80, B: 127})

	var out bytes.Buffer
	if err := WritePPM(&out, buf); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	expected := "P3\n2 2\n255\n" +
		"255 0 0\n" +
		"0 255 0\n" +
		"0 0 255\n" +
		"7 80 127\n"
	if out.String() != expected {
		t.Errorf("Expected:\n%q\ngot:\n%q", expected, out.String())
	}
}

func TestWritePPM_SinglePixelBlack(t *testing.T) {
	var out bytes.Buffer
	if err := WritePPM(&out, renderer.NewPixelBuffer(1, 1)); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}
	if out.String() != "P3\n1 1\n255\n0 0 0\n" {
		t.Errorf("Unexpected output %q", out.String())
	}
}

// failingWriter fails every write
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWritePPM_WriteError(t *testing.T) {
	if err := WritePPM(failingWriter{}, renderer.NewPixelBuffer(4, 4)); err == nil {
		t.Error("Expected error from failing writer")
	}
}

func TestBufferFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 12, 11))
	img.SetRGBA(11, 10, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	buf := BufferFromImage(img)
	if buf.Width != 2 || buf.Height != 1 {
		t.Fatalf("Expected 2x1 buffer, got %dx%d", buf.Width, buf.Height)
	}
	if got := buf.At(1, 0); got != (renderer.RGB{R: 1, G: 2, B: 3}) {
		t.Errorf("Expected {1 2 3}, got %v", got)
	}
}
