package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// NewDefaultScene creates three spheres on a ground sphere: diffuse in the
// center, a hollow glass bubble on the left and fuzzed gold on the right
func NewDefaultScene() *Scene {
	s := NewScene("default")
	s.CameraConfig.LookFrom = core.NewVec3(-2, 2, 1)
	s.CameraConfig.LookAt = core.NewVec3(0, 0, -1)
	s.CameraConfig.VFov = 20
	s.CameraConfig.DefocusAngle = 10
	s.CameraConfig.FocusDistance = 3.4
	s.CameraConfig.MaxBounces = 50

	ground := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.50)
	bubble := material.NewDielectric(1.00 / 1.50)
	gold := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0)

	// The bubble shares the glass sphere's center so the pair renders as a hollow shell
	left := core.NewVec3(-1.0, 0.0, -1.0)

	s.World.Add(geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, ground))
	s.World.Add(geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, center))
	s.World.Add(geometry.NewSphere(left, 0.5, glass))
	s.World.Add(geometry.NewSphere(left, 0.4, bubble))
	s.World.Add(geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, gold))

	return s
}

// NewGroundScene creates a single diffuse sphere under the sky, looking
// straight down -Z from the origin
func NewGroundScene() *Scene {
	s := NewScene("ground")
	s.CameraConfig.SamplesPerPixel = 100
	s.CameraConfig.MaxBounces = 10

	s.World.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))))
	s.World.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))))

	return s
}
