package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// glassIndices are the refraction indices shown left to right in the glass scene
var glassIndices = []float64{1.0, 1.33, 1.5, 1.77, 2.42}

// NewGlassScene creates a row of glass spheres of increasing refraction index
// (air, water, glass, sapphire, diamond) in front of a checker of diffuse spheres,
// with a hollow glass shell in the foreground
func NewGlassScene() *Scene {
	s := NewScene("glass")
	s.CameraConfig.LookFrom = core.NewVec3(0, 1.5, 6)
	s.CameraConfig.LookAt = core.NewVec3(0, 0.5, 0)
	s.CameraConfig.VFov = 35
	s.CameraConfig.SamplesPerPixel = 200
	s.CameraConfig.MaxBounces = 50

	s.World.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.6, 0.6, 0.6))))

	// Backdrop gives the refraction something to bend
	red := material.NewLambertian(core.NewColor(0.7, 0.15, 0.1))
	white := material.NewLambertian(core.NewColor(0.9, 0.9, 0.9))
	for i := -6; i <= 6; i++ {
		for row := 0; row < 3; row++ {
			mat := white
			if (i+row)%2 == 0 {
				mat = red
			}
			center := core.NewVec3(float64(i)*0.5, 0.25+float64(row)*0.5, -3)
			s.World.Add(geometry.NewSphere(center, 0.25, mat))
		}
	}

	for i, index := range glassIndices {
		x := (float64(i) - float64(len(glassIndices)-1)/2) * 1.1
		s.World.Add(geometry.NewSphere(core.NewVec3(x, 0.5, 0), 0.5, material.NewDielectric(index)))
	}

	// Hollow shell: an inner sphere with the inverted index turns the solid into a bubble
	shellCenter := core.NewVec3(0, 0.3, 2)
	s.World.Add(geometry.NewSphere(shellCenter, 0.3, material.NewDielectric(1.5)))
	s.World.Add(geometry.NewSphere(shellCenter, 0.27, material.NewDielectric(1/1.5)))

	return s
}
