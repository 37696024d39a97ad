package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := mgl64.DegToRad(h)

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(mgl64.Clamp(r, 0, 1), mgl64.Clamp(g, 0, 1), mgl64.Clamp(blue, 0, 1))
}

// NewMetalsScene creates a grid of metal spheres. Hue varies across X and
// fuzz increases along Z, from mirror-sharp to fully rough.
func NewMetalsScene() *Scene {
	s := NewScene("metals")
	s.CameraConfig.LookFrom = core.NewVec3(4.5, 6, 18)
	s.CameraConfig.LookAt = core.NewVec3(4.5, 0.8, 4.5)
	s.CameraConfig.VFov = 40
	s.CameraConfig.DefocusAngle = 0.3
	s.CameraConfig.FocusDistance = core.NewVec3(4.5, 6, 18).Sub(core.NewVec3(4.5, 0.8, 4.5)).Len()
	s.CameraConfig.SamplesPerPixel = 100
	s.CameraConfig.MaxBounces = 40

	s.World.Add(geometry.NewSphere(core.NewVec3(4.5, -1000, 4.5), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))))

	gridSize := 10
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := mgl64.Clamp(spacing*0.35, 0.02, 0.35)

	baseLightness := 0.65
	chroma := 0.2

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			fuzz := float64(j) / float64(gridSize-1)

			metal := material.NewMetal(oklchToRGB(lightness, chroma, hue), fuzz)
			s.World.Add(geometry.NewSphere(position, sphereRadius, metal))
		}
	}

	return s
}
