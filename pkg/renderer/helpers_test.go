package renderer

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// constantSampler always returns the same value
type constantSampler struct {
	value float64
}

func (c constantSampler) Get1D() float64 { return c.value }

// testLogger records formatted output
type testLogger struct {
	lines []string
}

var _ core.Logger = (*testLogger)(nil)

func (tl *testLogger) Printf(format string, args ...interface{}) {
	tl.lines = append(tl.lines, format)
}

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a[0]-b[0]) <= tolerance &&
		math.Abs(a[1]-b[1]) <= tolerance &&
		math.Abs(a[2]-b[2]) <= tolerance
}

// testCameraConfig returns a small forward-looking camera
func testCameraConfig() CameraConfig {
	config := DefaultCameraConfig()
	config.AspectRatio = 2.0
	config.ImageWidth = 32
	config.SamplesPerPixel = 4
	config.MaxBounces = 10
	return config
}

// groundWorld is a single huge diffuse sphere below the camera
func groundWorld(albedo core.Color) *geometry.HittableList {
	return geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(albedo)),
	)
}

// mixedWorld exercises every material
func mixedWorld() *geometry.HittableList {
	return geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.3)),
	)
}
