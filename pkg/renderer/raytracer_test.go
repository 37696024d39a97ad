package renderer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func newTestCamera(t *testing.T, modify func(*CameraConfig)) *Camera {
	t.Helper()
	config := testCameraConfig()
	if modify != nil {
		modify(&config)
	}
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	return camera
}

func TestRender_GroundSphereSingleBounce(t *testing.T) {
	camera := newTestCamera(t, func(c *CameraConfig) {
		c.SamplesPerPixel = 1
		c.MaxBounces = 1
	})
	world := groundWorld(core.NewColor(0.5, 0.5, 0.5))

	buf, stats, err := NewRaytracer(world, camera, WithWorkers(2), WithTileSize(8)).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if buf.Width != 32 || buf.Height != 16 {
		t.Fatalf("Expected 32x16 buffer, got %dx%d", buf.Width, buf.Height)
	}

	// Every ground hit scatters once, then returns albedo * terminal gray = 0.25,
	// which gamma-encodes to 0.5
	ground := RGB{127, 127, 127}
	isSky := func(p RGB) bool { return p.B == 255 && p.R < p.B && p.G < p.B }

	groundPixels, skyPixels := 0, 0
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			got := buf.At(x, y)
			switch {
			case got == ground:
				groundPixels++
			case isSky(got):
				skyPixels++
			default:
				t.Errorf("Pixel (%d, %d): expected ground %v or sky gradient, got %v", x, y, ground, got)
			}
		}
	}
	if groundPixels == 0 || skyPixels == 0 {
		t.Errorf("Expected both ground and sky pixels, got %d ground and %d sky", groundPixels, skyPixels)
	}

	for x := 0; x < buf.Width; x++ {
		if got := buf.At(x, buf.Height-1); got != ground {
			t.Errorf("Bottom row pixel %d: expected %v, got %v", x, ground, got)
		}
		if got := buf.At(x, 0); !isSky(got) {
			t.Errorf("Top row pixel %d: expected sky gradient, got %v", x, got)
		}
	}

	if stats.TotalPixels != 32*16 {
		t.Errorf("Expected %d pixels, got %d", 32*16, stats.TotalPixels)
	}
	if stats.TotalSamples != 32*16 || stats.MinSamples != 1 || stats.MaxSamplesUsed != 1 {
		t.Errorf("Expected 1 sample for every pixel, got %+v", stats)
	}
}

func TestRender_ZeroBouncesIsUniformTerminal(t *testing.T) {
	camera := newTestCamera(t, func(c *CameraConfig) { c.MaxBounces = 0 })

	buf, _, err := NewRaytracer(mixedWorld(), camera, WithWorkers(1)).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// sqrt(0.5) * 255.999 = 181.02
	expected := RGB{181, 181, 181}
	for i, p := range buf.Pix {
		if p != expected {
			t.Fatalf("Pixel %d: expected %v, got %v", i, expected, p)
		}
	}
}

func TestRender_DeterministicAcrossWorkerCounts(t *testing.T) {
	camera := newTestCamera(t, func(c *CameraConfig) {
		c.DefocusAngle = 2
		c.FocusDistance = 1.2
	})
	world := mixedWorld()

	reference, _, err := NewRaytracer(world, camera, WithWorkers(1), WithTileSize(8), WithSeed(99)).Render(context.Background())
	if err != nil {
		t.Fatalf("Sequential render failed: %v", err)
	}

	for _, workers := range []int{2, 3, 8} {
		buf, _, err := NewRaytracer(world, camera, WithWorkers(workers), WithTileSize(8), WithSeed(99)).Render(context.Background())
		if err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		for i := range reference.Pix {
			if buf.Pix[i] != reference.Pix[i] {
				t.Fatalf("Workers=%d: pixel %d differs: expected %v, got %v", workers, i, reference.Pix[i], buf.Pix[i])
			}
		}
	}
}

func TestRender_SeedChangesNoise(t *testing.T) {
	camera := newTestCamera(t, nil)
	world := mixedWorld()

	a, _, err := NewRaytracer(world, camera, WithWorkers(1), WithSeed(1)).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	b, _, err := NewRaytracer(world, camera, WithWorkers(1), WithSeed(2)).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	differ := false
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			differ = true
			break
		}
	}
	if !differ {
		t.Error("Expected different seeds to produce different noise")
	}
}

func TestRender_Cancelled(t *testing.T) {
	camera := newTestCamera(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		buf, _, err := NewRaytracer(mixedWorld(), camera, WithWorkers(workers)).Render(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Workers=%d: expected context.Canceled, got %v", workers, err)
		}
		if buf != nil {
			t.Errorf("Workers=%d: expected nil buffer on cancel", workers)
		}
	}
}

func TestRender_MissingInputs(t *testing.T) {
	camera := newTestCamera(t, nil)

	if _, _, err := NewRaytracer(nil, camera).Render(context.Background()); err == nil {
		t.Error("Expected error for nil world")
	}
	if _, _, err := NewRaytracer(mixedWorld(), nil).Render(context.Background()); err == nil {
		t.Error("Expected error for nil camera")
	}
}

func TestRender_LogsCompletion(t *testing.T) {
	camera := newTestCamera(t, func(c *CameraConfig) { c.SamplesPerPixel = 1 })
	logger := &testLogger{}

	if _, _, err := NewRaytracer(mixedWorld(), camera, WithLogger(logger)).Render(context.Background()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	found := false
	for _, line := range logger.lines {
		if strings.HasPrefix(line, "Done in") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a \"Done in\" log line, got %v", logger.lines)
	}
}

func TestRenderConvenience(t *testing.T) {
	camera := newTestCamera(t, func(c *CameraConfig) { c.SamplesPerPixel = 1 })

	buf, err := Render(groundWorld(core.NewColor(0.5, 0.5, 0.5)), camera)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(buf.Pix) != camera.Width()*camera.Height() {
		t.Errorf("Expected %d pixels, got %d", camera.Width()*camera.Height(), len(buf.Pix))
	}
}

func TestNewRaytracer_Options(t *testing.T) {
	camera := newTestCamera(t, nil)
	rt := NewRaytracer(mixedWorld(), camera, WithTileSize(-3), WithLogger(nil), WithSeed(5))

	options := rt.Options()
	if options.TileSize != DefaultTileSize {
		t.Errorf("Expected invalid tile size to fall back to %d, got %d", DefaultTileSize, options.TileSize)
	}
	if options.Logger == nil {
		t.Error("Expected nil logger to be replaced")
	}
	if options.Seed != 5 {
		t.Errorf("Expected seed 5, got %d", options.Seed)
	}
}
