package material

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// sequenceSampler replays a fixed list of values, cycling when exhausted
type sequenceSampler struct {
	values []float64
	next   int
}

func newSequenceSampler(values ...float64) *sequenceSampler {
	return &sequenceSampler{values: values}
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// unitVectorSamples returns the three sampler values that make
// core.RandomUnitVector produce the given axis-aligned half-length vector
func unitVectorSamples(x, y, z float64) []float64 {
	return []float64{(x*0.5 + 1) / 2, (y*0.5 + 1) / 2, (z*0.5 + 1) / 2}
}

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return a.Sub(b).Len() <= tolerance
}

func angleBetween(a, b core.Vec3) float64 {
	return math.Acos(a.Normalize().Dot(b.Normalize()))
}
