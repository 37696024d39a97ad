package renderer

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// hitRange excludes intersections closer than 0.001 to avoid shadow acne
var hitRange = core.UniverseInterval.WithMin(0.001)

// Environment describes what a ray sees when it leaves the scene or runs out of bounces
type Environment struct {
	Sky           core.Color `json:"sky"`           // Color straight up
	Horizon       core.Color `json:"horizon"`       // Color straight down
	TerminalColor core.Color `json:"terminalColor"` // Returned when the bounce budget is exhausted
}

// DefaultEnvironment returns the blue-to-white sky gradient
func DefaultEnvironment() Environment {
	return Environment{
		Sky:           core.NewColor(0.5, 0.75, 1.0),
		Horizon:       core.NewColor(1.0, 1.0, 1.0),
		TerminalColor: core.NewColor(0.5, 0.5, 0.5),
	}
}

// Background returns the gradient color for a ray that escapes the scene
func (e Environment) Background(ray core.Ray) core.Color {
	unit := ray.Direction.Normalize()
	a := 0.5 * (unit[1] + 1.0)
	return core.Lerp(e.Horizon, e.Sky, a)
}

// PathIntegrator estimates the light arriving along a ray by following scattered
// rays through the world
type PathIntegrator struct {
	env Environment
}

// NewPathIntegrator creates an integrator using the given environment
func NewPathIntegrator(env Environment) *PathIntegrator {
	return &PathIntegrator{env: env}
}

// Environment returns the integrator's environment
func (pi *PathIntegrator) Environment() Environment {
	return pi.env
}

// RayColor returns the color seen along ray with at most maxBounces scatter events.
// Hits whose material is nil absorb the ray.
func (pi *PathIntegrator) RayColor(ray core.Ray, world geometry.Hittable, maxBounces int, sampler core.Sampler) core.Color {
	throughput := core.Splat(1)

	for remaining := maxBounces; ; remaining-- {
		if remaining <= 0 {
			return core.MultiplyVec(throughput, pi.env.TerminalColor)
		}

		hit, isHit := world.Hit(ray, hitRange)
		if !isHit {
			return core.MultiplyVec(throughput, pi.env.Background(ray))
		}

		if hit.Material == nil {
			return core.Color{}
		}
		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter {
			return core.Color{}
		}

		throughput = core.MultiplyVec(throughput, scatter.Attenuation)
		ray = scatter.Scattered
	}
}
