package renderer

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// intensity is the range a gamma-encoded channel is clamped to before quantization
var intensity = core.NewInterval(0.000, 0.999)

// LinearToGamma applies the gamma 2 transfer function. Non-positive and NaN
// inputs map to 0.
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// GammaToLinear is the inverse of LinearToGamma for non-negative inputs
func GammaToLinear(gamma float64) float64 {
	return gamma * gamma
}

// RGB is a quantized 8-bit pixel
type RGB struct {
	R, G, B uint8
}

// ColorToRGB converts a linear color to a gamma-corrected 8-bit pixel
func ColorToRGB(c core.Color) RGB {
	return RGB{
		R: quantize(c[0]),
		G: quantize(c[1]),
		B: quantize(c[2]),
	}
}

func quantize(linear float64) uint8 {
	return uint8(255.999 * intensity.Clamp(LinearToGamma(linear)))
}
