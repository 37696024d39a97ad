package output

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// ErrUnknownFormat is returned for unsupported image formats
var ErrUnknownFormat = errors.New("unknown image format")

// Format is an output image format
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// Formats lists every supported format
var Formats = []Format{FormatPPM, FormatPNG, FormatBMP, FormatTIFF}

// ParseFormat parses a format name, case-insensitively. "tif" is accepted for TIFF.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownFormat)
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%q has no extension: %w", path, ErrUnknownFormat)
	}
	return ParseFormat(ext)
}

// Extension returns the file extension for the format, including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatPPM:
		return "image/x-portable-pixmap"
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	}
	return "application/octet-stream"
}

// EncodeImage writes img in the given format
func EncodeImage(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, BufferFromImage(img))
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}

// Encode writes buf in the given format, resized by scale when scale is not 1
func Encode(w io.Writer, buf *renderer.PixelBuffer, format Format, scale float64) error {
	if scale == 1 || scale == 0 {
		if format == FormatPPM {
			return WritePPM(w, buf)
		}
		return EncodeImage(w, buf.Image(), format)
	}

	scaled, err := Scale(buf.Image(), scale)
	if err != nil {
		return err
	}
	return EncodeImage(w, scaled, format)
}

// WriteFile encodes buf to path, creating parent directories as needed
func WriteFile(path string, buf *renderer.PixelBuffer, format Format, scale float64) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("closing output file: %w", closeErr)
		}
	}()

	if err := Encode(file, buf, format, scale); err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return nil
}
