package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.HittableList // Objects in the scene
	CameraConfig renderer.CameraConfig
	Environment  renderer.Environment
}

// NewScene creates an empty scene with default camera and environment
func NewScene(name string) *Scene {
	return &Scene{
		Name:         name,
		World:        geometry.NewHittableList(),
		CameraConfig: renderer.DefaultCameraConfig(),
		Environment:  renderer.DefaultEnvironment(),
	}
}

// NewCamera builds the scene camera with any non-zero override fields applied
func (s *Scene) NewCamera(overrides ...renderer.CameraConfig) (*renderer.Camera, error) {
	config := s.CameraConfig
	if len(overrides) > 0 {
		config = MergeCameraConfig(config, overrides[0])
	}
	return renderer.NewCamera(config)
}

// ObjectCount returns the number of top-level objects in the world
func (s *Scene) ObjectCount() int {
	return s.World.Len()
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override renderer.CameraConfig) renderer.CameraConfig {
	result := base
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.ImageWidth != 0 {
		result.ImageWidth = override.ImageWidth
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxBounces != 0 {
		result.MaxBounces = override.MaxBounces
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	return result
}
