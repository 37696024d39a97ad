package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int             // Unique tile identifier, row-major
	Bounds          image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int             // Number of passes completed for this tile
	Sampler         core.Sampler    // Tile-specific sampler for deterministic results
}

// NewTile creates a tile whose sampler is seeded from the render seed and the tile ID
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewRandomSampler(rand.New(rand.NewSource(seed + int64(id)))),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	id := 0
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			bounds := image.Rect(x, y, min(x+tileSize, width), min(y+tileSize, height))
			tiles = append(tiles, NewTile(id, bounds, seed))
			id++
		}
	}
	return tiles
}

// TileRenderer samples the pixels of a tile into shared pixel statistics
type TileRenderer struct {
	world      geometry.Hittable
	camera     *Camera
	integrator *PathIntegrator
}

// NewTileRenderer creates a new tile renderer for the given world and camera
func NewTileRenderer(world geometry.Hittable, camera *Camera, integrator *PathIntegrator) *TileRenderer {
	return &TileRenderer{
		world:      world,
		camera:     camera,
		integrator: integrator,
	}
}

// RenderTile brings every pixel of tile up to targetSamples. Pixels are
// visited row by row, left to right, so the sampler sequence is fixed for a tile.
func (tr *TileRenderer) RenderTile(tile *Tile, pixelStats [][]PixelStats, targetSamples int) RenderStats {
	bounds := tile.Bounds
	stats := newRenderStats(bounds.Dx()*bounds.Dy(), targetSamples)
	maxBounces := tr.camera.MaxBounces()

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[j][i]
			before := ps.SampleCount
			for ps.SampleCount < targetSamples {
				ray := tr.camera.GetRay(i, j, tile.Sampler)
				ps.AddSample(tr.integrator.RayColor(ray, tr.world, maxBounces, tile.Sampler))
			}
			stats.addPixel(ps.SampleCount - before)
		}
	}

	stats.finalize()
	return stats
}
