package core

import "math"

// Interval is a range of real numbers [Min, Max]
type Interval struct {
	Min, Max float64
}

// UniverseInterval contains every value
var UniverseInterval = Interval{Min: math.Inf(-1), Max: math.Inf(1)}

// NewInterval creates a new interval
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// Size returns the length of the interval
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports whether min <= x <= max
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether min < x < max
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp limits x to [min, max]
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}

// WithMin returns a copy of the interval with a new lower bound
func (i Interval) WithMin(min float64) Interval {
	return Interval{Min: min, Max: i.Max}
}

// WithMax returns a copy of the interval with a new upper bound
func (i Interval) WithMax(max float64) Interval {
	return Interval{Min: i.Min, Max: max}
}
