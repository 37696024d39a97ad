package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays.
// Hit reports the nearest intersection whose t lies strictly inside rayT.
// Implementations must not mutate state, so a scene can be shared by
// concurrent render workers.
type Hittable interface {
	Hit(ray core.Ray, rayT core.Interval) (material.HitRecord, bool)
}
