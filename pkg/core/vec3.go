package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D vector backed by mathgl's float64 vector type
type Vec3 = mgl64.Vec3

// Color is an RGB triple in linear space, each channel nominally in [0, 1]
type Color = Vec3

// nearZeroEpsilon is the per-component threshold used by NearZero
const nearZeroEpsilon = 1e-8

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{r, g, b}
}

// Splat returns a vector with all three components set to v
func Splat(v float64) Vec3 {
	return Vec3{v, v, v}
}

// MultiplyVec returns component-wise multiplication of two vectors
func MultiplyVec(a, b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Lerp linearly interpolates from a (t=0) to b (t=1)
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Mul(1.0 - t).Add(b.Mul(t))
}

// NearZero reports whether every component is within 1e-8 of zero
func NearZero(v Vec3) bool {
	return math.Abs(v[0]) < nearZeroEpsilon &&
		math.Abs(v[1]) < nearZeroEpsilon &&
		math.Abs(v[2]) < nearZeroEpsilon
}

// Negate returns the negative of the vector
func Negate(v Vec3) Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Luminance returns the perceptual luminance of an RGB color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func Luminance(c Color) float64 {
	return 0.299*c[0] + 0.587*c[1] + 0.114*c[2]
}

// Reflect reflects v about the normal n: v - 2*dot(v,n)*n
func Reflect(v, n Vec3) Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Refract bends the unit vector uv through a surface with normal n using Snell's law,
// where etaiOverEtat is the ratio of refractive indices
func Refract(uv, n Vec3, etaiOverEtat float64) Vec3 {
	cosTheta := math.Min(Negate(uv).Dot(n), 1.0)
	rOutPerp := uv.Add(n.Mul(cosTheta)).Mul(etaiOverEtat)
	rOutParallel := n.Mul(-math.Sqrt(math.Abs(1.0 - rOutPerp.LenSqr())))
	return rOutPerp.Add(rOutParallel)
}
