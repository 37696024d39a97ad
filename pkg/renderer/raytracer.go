package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

const (
	// DefaultTileSize is the edge length of a render tile in pixels
	DefaultTileSize = 64
	// DefaultSeed seeds tile samplers when no seed is given
	DefaultSeed int64 = 42
)

// Options configures a Raytracer
type Options struct {
	NumWorkers  int         // Parallel workers (0 = use CPU count, 1 = render on the calling goroutine)
	TileSize    int         // Edge length of each tile in pixels
	Seed        int64       // Base seed for per-tile samplers
	Environment Environment // Background and terminal colors
	Logger      core.Logger // Progress output
}

// Option modifies Options
type Option func(*Options)

// WithWorkers sets the number of parallel workers
func WithWorkers(n int) Option {
	return func(o *Options) { o.NumWorkers = n }
}

// WithTileSize sets the tile edge length
func WithTileSize(size int) Option {
	return func(o *Options) { o.TileSize = size }
}

// WithSeed sets the base sampler seed
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithEnvironment sets the background and terminal colors
func WithEnvironment(env Environment) Option {
	return func(o *Options) { o.Environment = env }
}

// WithLogger sets the logger used for progress output
func WithLogger(logger core.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		NumWorkers:  0,
		TileSize:    DefaultTileSize,
		Seed:        DefaultSeed,
		Environment: DefaultEnvironment(),
		Logger:      core.NopLogger(),
	}
}

// Raytracer renders a world through a camera into a pixel buffer
type Raytracer struct {
	world    geometry.Hittable
	camera   *Camera
	options  Options
	renderer *TileRenderer
}

// NewRaytracer creates a raytracer for the given world and camera
func NewRaytracer(world geometry.Hittable, camera *Camera, opts ...Option) *Raytracer {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.TileSize <= 0 {
		options.TileSize = DefaultTileSize
	}
	if options.Logger == nil {
		options.Logger = core.NopLogger()
	}

	return &Raytracer{
		world:    world,
		camera:   camera,
		options:  options,
		renderer: NewTileRenderer(world, camera, NewPathIntegrator(options.Environment)),
	}
}

// Options returns the resolved options
func (rt *Raytracer) Options() Options {
	return rt.options
}

// Camera returns the camera being rendered through
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Render traces SamplesPerPixel rays for every pixel and returns the quantized image.
// The result depends only on the world, camera and seed, not on the worker count.
// Cancellation is checked between tiles.
func (rt *Raytracer) Render(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	if rt.camera == nil {
		return nil, RenderStats{}, errors.New("raytracer has no camera")
	}
	if rt.world == nil {
		return nil, RenderStats{}, errors.New("raytracer has no world")
	}

	width, height := rt.camera.Width(), rt.camera.Height()
	samples := rt.camera.SamplesPerPixel()
	tiles := NewTileGrid(width, height, rt.options.TileSize, rt.options.Seed)
	pixelStats := newPixelStatsGrid(width, height)

	start := time.Now()
	var err error
	if rt.options.NumWorkers == 1 {
		rt.options.Logger.Printf("Rendering %dx%d, %d samples per pixel, %d tiles (sequential)\n",
			width, height, samples, len(tiles))
		err = rt.renderSequential(ctx, tiles, pixelStats, samples)
	} else {
		err = rt.renderParallel(ctx, tiles, pixelStats, samples)
	}
	if err != nil {
		return nil, RenderStats{}, err
	}

	buf, stats := resolvePixels(pixelStats, width, height, samples)
	rt.options.Logger.Printf("Done in %v: %s\n", time.Since(start).Round(time.Millisecond), stats)
	return buf, stats, nil
}

func (rt *Raytracer) renderSequential(ctx context.Context, tiles []*Tile, pixelStats [][]PixelStats, samples int) error {
	for _, tile := range tiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		rt.renderer.RenderTile(tile, pixelStats, samples)
		tile.PassesCompleted++
	}
	return nil
}

func (rt *Raytracer) renderParallel(ctx context.Context, tiles []*Tile, pixelStats [][]PixelStats, samples int) error {
	pool := NewWorkerPool(rt.renderer, rt.options.NumWorkers, len(tiles))
	rt.options.Logger.Printf("Rendering %dx%d, %d samples per pixel, %d tiles (%d workers)\n",
		rt.camera.Width(), rt.camera.Height(), samples, len(tiles), pool.GetNumWorkers())

	pool.Start()
	defer pool.Stop()

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{
			Ctx:           ctx,
			Tile:          tile,
			PassNumber:    1,
			TargetSamples: samples,
			TaskID:        i,
			PixelStats:    pixelStats,
		})
	}

	var firstErr error
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			return fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		tiles[result.TaskID].PassesCompleted++
	}
	return firstErr
}

// Render renders world through camera with default options
func Render(world geometry.Hittable, camera *Camera) (*PixelBuffer, error) {
	buf, _, err := NewRaytracer(world, camera).Render(context.Background())
	return buf, err
}
