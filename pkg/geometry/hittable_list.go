package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// HittableList is an ordered collection of hittables that is itself hittable.
// Membership changes only while the scene is being built.
type HittableList struct {
	objects []Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{}
	for _, object := range objects {
		list.Add(object)
	}
	return list
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.objects = append(l.objects, object)
}

// Clear removes all objects
func (l *HittableList) Clear() {
	l.objects = nil
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Objects returns the list members in insertion order
func (l *HittableList) Objects() []Hittable {
	return l.objects
}

// Hit returns the closest hit among all members
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	if rayT.Size() <= 0 {
		return closestHit, false
	}

	closestSoFar := rayT.Max
	hitAnything := false

	for _, object := range l.objects {
		if hit, isHit := object.Hit(ray, rayT.WithMax(closestSoFar)); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
