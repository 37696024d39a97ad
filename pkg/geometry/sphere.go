package geometry

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere. Negative radii are clamped to zero.
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   math.Max(0, radius),
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere.
// A ray with a zero direction never hits, and neither does a zero-radius sphere.
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (material.HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := s.Center.Sub(ray.Origin)

	// Quadratic with b = -2h: at² - 2ht + c = 0
	a := ray.Direction.LenSqr()
	if a == 0 || s.Radius == 0 {
		return material.HitRecord{}, false
	}
	h := ray.Direction.Dot(oc)
	c := oc.LenSqr() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return material.HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return material.HitRecord{}, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Sub(s.Center).Mul(1.0 / s.Radius)
	return material.NewHitRecord(ray, root, outwardNormal, s.Material), true
}
