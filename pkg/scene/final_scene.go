package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// FinalSceneSeed is the seed used for the sphere field of the final scene
const FinalSceneSeed int64 = 1

// NewFinalScene creates a field of small random spheres around three large
// feature spheres. The layout is fixed by seed.
func NewFinalScene(seed int64) *Scene {
	s := NewScene("final")
	s.CameraConfig.AspectRatio = 16.0 / 9.0
	s.CameraConfig.ImageWidth = 1200
	s.CameraConfig.SamplesPerPixel = 500
	s.CameraConfig.MaxBounces = 50
	s.CameraConfig.VFov = 20
	s.CameraConfig.LookFrom = core.NewVec3(13, 2, 3)
	s.CameraConfig.LookAt = core.NewVec3(0, 0, 0)
	s.CameraConfig.DefocusAngle = 0.6
	s.CameraConfig.FocusDistance = 10.0

	random := rand.New(rand.NewSource(seed))
	randomColor := func(lo, hi float64) core.Color {
		return core.NewColor(
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
		)
	}

	ground := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	s.World.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	// One glass material is shared by every small glass sphere
	glass := material.NewDielectric(1.5)
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			if center.Sub(clearing).Len() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				albedo := core.MultiplyVec(randomColor(0, 1), randomColor(0, 1))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				mat = material.NewMetal(randomColor(0.5, 1), 0.5*random.Float64())
			default:
				mat = glass
			}
			s.World.Add(geometry.NewSphere(center, 0.2, mat))
		}
	}

	s.World.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass))
	s.World.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))))
	s.World.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)))

	return s
}
