package renderer

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// statsPrinter formats counts with digit grouping
var statsPrinter = message.NewPrinter(language.English)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamples     int     // Target samples per pixel
	MinSamples     int     // Minimum samples taken per pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
}

// String returns a one-line summary such as "96,000 pixels, 9,600,000 samples (100.0 per pixel)"
func (s RenderStats) String() string {
	return statsPrinter.Sprintf("%d pixels, %d samples (%.1f per pixel)",
		s.TotalPixels, s.TotalSamples, s.AverageSamples)
}

// newRenderStats starts statistics for pixelCount pixels with the given target
func newRenderStats(pixelCount, targetSamples int) RenderStats {
	return RenderStats{
		TotalPixels: pixelCount,
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples, // Start with max, will be reduced
	}
}

// addPixel records the samples taken for one pixel
func (s *RenderStats) addPixel(samples int) {
	s.TotalSamples += samples
	s.MinSamples = min(s.MinSamples, samples)
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, samples)
}

// finalize computes derived fields once every pixel is recorded
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// PixelStats accumulates samples for a single pixel
type PixelStats struct {
	ColorAccum  core.Color // Sum of linear color samples
	SampleCount int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Color{}
	}
	return ps.ColorAccum.Mul(1.0 / float64(ps.SampleCount))
}

// newPixelStatsGrid allocates one PixelStats per pixel, indexed [y][x]
func newPixelStatsGrid(width, height int) [][]PixelStats {
	grid := make([][]PixelStats, height)
	for y := range grid {
		grid[y] = make([]PixelStats, width)
	}
	return grid
}

// resolvePixels quantizes the averaged pixel colors into a buffer and
// gathers statistics over the whole image
func resolvePixels(grid [][]PixelStats, width, height, targetSamples int) (*PixelBuffer, RenderStats) {
	buf := NewPixelBuffer(width, height)
	stats := newRenderStats(width*height, targetSamples)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixel := &grid[y][x]
			buf.Set(x, y, ColorToRGB(pixel.GetColor()))
			stats.addPixel(pixel.SampleCount)
		}
	}
	stats.finalize()
	return buf, stats
}
