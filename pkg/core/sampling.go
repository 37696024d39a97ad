package core

import (
	"math"
	"math/rand"
)

// MaxRejectionAttempts bounds the rejection-sampling loops below. Acceptance
// is roughly 52% for the ball and 79% for the disk, so the cap is never hit
// in practice.
const MaxRejectionAttempts = 256

// minSampleLengthSquared rejects candidates too close to the origin to normalize
const minSampleLengthSquared = 1e-160

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	// Get1D returns a uniform value in [0, 1)
	Get1D() float64
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic generator
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// symmetric maps a [0,1) sample to [-1,1)
func symmetric(sampler Sampler) float64 {
	return 2*sampler.Get1D() - 1
}

// RandomUnitVector returns a uniformly distributed unit vector, found by
// rejection sampling a point in the unit ball and normalizing it.
// Falls back to +Z if every attempt is rejected.
func RandomUnitVector(sampler Sampler) Vec3 {
	for i := 0; i < MaxRejectionAttempts; i++ {
		p := NewVec3(symmetric(sampler), symmetric(sampler), symmetric(sampler))
		lensq := p.LenSqr()
		if minSampleLengthSquared < lensq && lensq < 1 {
			return p.Mul(1 / math.Sqrt(lensq))
		}
	}
	return NewVec3(0, 0, 1)
}

// RandomInUnitDisk generates a random point in the unit disk on the z=0 plane
// (for depth of field). Falls back to the disk center if every attempt is rejected.
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for i := 0; i < MaxRejectionAttempts; i++ {
		p := NewVec3(symmetric(sampler), symmetric(sampler), 0)
		if p.LenSqr() < 1 {
			return p
		}
	}
	return NewVec3(0, 0, 0)
}

// SampleSquare returns a random offset in the [-0.5,0.5]x[-0.5,0.5] square
func SampleSquare(sampler Sampler) Vec3 {
	return NewVec3(sampler.Get1D()-0.5, sampler.Get1D()-0.5, 0)
}
