package core

import (
	"math"
	"testing"
)

// constantSampler always returns the same value
type constantSampler struct {
	value float64
	calls int
}

func (c *constantSampler) Get1D() float64 {
	c.calls++
	return c.value
}

func TestRandomUnitVector_IsUnitLength(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Len()-1) > 1e-9 {
			t.Fatalf("Sample %d: expected unit length, got %v (%v)", i, v.Len(), v)
		}
	}
}

func TestRandomUnitVector_CoversAllOctants(t *testing.T) {
	sampler := NewSeededSampler(7)
	seen := make(map[[3]bool]bool)
	for i := 0; i < 2000; i++ {
		v := RandomUnitVector(sampler)
		seen[[3]bool{v[0] > 0, v[1] > 0, v[2] > 0}] = true
	}
	if len(seen) != 8 {
		t.Errorf("Expected samples in all 8 octants, got %d", len(seen))
	}
}

func TestRandomUnitVector_FallbackWhenAlwaysRejected(t *testing.T) {
	// 0.0 maps to -1 on every axis, so |p|^2 = 3 is always rejected
	sampler := &constantSampler{value: 0}
	v := RandomUnitVector(sampler)

	if v != NewVec3(0, 0, 1) {
		t.Errorf("Expected +Z fallback, got %v", v)
	}
	if sampler.calls != 3*MaxRejectionAttempts {
		t.Errorf("Expected %d draws, got %d", 3*MaxRejectionAttempts, sampler.calls)
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(sampler)
		if p[2] != 0 {
			t.Fatalf("Expected z=0, got %v", p)
		}
		if p.LenSqr() >= 1 {
			t.Fatalf("Expected point inside unit disk, got %v", p)
		}
	}
}

func TestRandomInUnitDisk_FallbackWhenAlwaysRejected(t *testing.T) {
	sampler := &constantSampler{value: 0}
	if p := RandomInUnitDisk(sampler); p != NewVec3(0, 0, 0) {
		t.Errorf("Expected disk center fallback, got %v", p)
	}
}

func TestSampleSquare(t *testing.T) {
	sampler := NewSeededSampler(3)
	for i := 0; i < 1000; i++ {
		p := SampleSquare(sampler)
		if p[0] < -0.5 || p[0] >= 0.5 || p[1] < -0.5 || p[1] >= 0.5 || p[2] != 0 {
			t.Fatalf("Sample outside [-0.5,0.5)^2: %v", p)
		}
	}
}

func TestSeededSampler_IsDeterministic(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)
	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Expected identical sequences for identical seeds")
		}
	}
}
