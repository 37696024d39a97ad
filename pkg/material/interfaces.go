package material

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Material interface for objects that can scatter rays.
// Implementations hold only immutable data, so one material value may be
// shared by any number of primitives and used from many goroutines.
type Material interface {
	// Scatter returns the scattered ray and its attenuation, or false if the
	// incoming light was absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, always facing against the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// NewHitRecord builds the record for a hit at parameter t. outwardNormal must
// have unit length; it is flipped when the ray arrives from inside the surface.
func NewHitRecord(ray core.Ray, t float64, outwardNormal core.Vec3, mat Material) HitRecord {
	frontFace, normal := FaceNormal(ray, outwardNormal)
	return HitRecord{
		Point:     ray.At(t),
		Normal:    normal,
		T:         t,
		FrontFace: frontFace,
		Material:  mat,
	}
}

// FaceNormal determines front/back face and returns the normal oriented against the ray
func FaceNormal(ray core.Ray, outwardNormal core.Vec3) (bool, core.Vec3) {
	frontFace := ray.Direction.Dot(outwardNormal) < 0
	if frontFace {
		return true, outwardNormal
	}
	return false, core.Negate(outwardNormal)
}
