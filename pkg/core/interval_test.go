package core

import (
	"math"
	"testing"
)

func TestInterval_ContainsAndSurrounds(t *testing.T) {
	interval := NewInterval(0.001, 10)

	tests := []struct {
		name          string
		x             float64
		wantContains  bool
		wantSurrounds bool
	}{
		{"below min", 0.0, false, false},
		{"at min", 0.001, true, false},
		{"inside", 5, true, true},
		{"at max", 10, true, false},
		{"above max", 10.5, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interval.Contains(tt.x); got != tt.wantContains {
				t.Errorf("Contains(%v) = %v, expected %v", tt.x, got, tt.wantContains)
			}
			if got := interval.Surrounds(tt.x); got != tt.wantSurrounds {
				t.Errorf("Surrounds(%v) = %v, expected %v", tt.x, got, tt.wantSurrounds)
			}
		})
	}
}

func TestInterval_Clamp(t *testing.T) {
	interval := NewInterval(0, 0.999)

	if got := interval.Clamp(-0.5); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
	if got := interval.Clamp(0.5); got != 0.5 {
		t.Errorf("Expected 0.5, got %v", got)
	}
	if got := interval.Clamp(2); got != 0.999 {
		t.Errorf("Expected 0.999, got %v", got)
	}
}

func TestInterval_Universe(t *testing.T) {
	for _, x := range []float64{-1e300, 0, 1e300} {
		if !UniverseInterval.Surrounds(x) {
			t.Errorf("Universe interval should surround %v", x)
		}
	}
	if !math.IsInf(UniverseInterval.Size(), 1) {
		t.Errorf("Expected infinite universe size, got %v", UniverseInterval.Size())
	}
}

func TestInterval_Size(t *testing.T) {
	if got := NewInterval(1, 3.5).Size(); got != 2.5 {
		t.Errorf("Expected 2.5, got %v", got)
	}
	if got := NewInterval(2, 1).Size(); got >= 0 {
		t.Errorf("Expected negative size for an inverted interval, got %v", got)
	}
}

func TestInterval_WithMin(t *testing.T) {
	interval := UniverseInterval.WithMin(0.001)
	if interval.Min != 0.001 || !math.IsInf(interval.Max, 1) {
		t.Errorf("Expected [0.001, +Inf], got [%v, %v]", interval.Min, interval.Max)
	}
}

func TestInterval_WithMax(t *testing.T) {
	interval := NewInterval(0.001, math.Inf(1)).WithMax(3)
	if interval.Min != 0.001 || interval.Max != 3 {
		t.Errorf("Expected [0.001, 3], got [%v, %v]", interval.Min, interval.Max)
	}
}
