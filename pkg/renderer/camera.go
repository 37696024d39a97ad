package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Camera construction errors. They are returned before any rendering work starts.
var (
	ErrInvalidImageWidth    = errors.New("image width must be at least 1")
	ErrInvalidImageHeight   = errors.New("image height derived from aspect ratio must be at least 1")
	ErrInvalidSamples       = errors.New("samples per pixel must be at least 1")
	ErrInvalidMaxBounces    = errors.New("max bounces must not be negative")
	ErrInvalidFieldOfView   = errors.New("vertical field of view must be between 0 and 180 degrees")
	ErrInvalidFocusDistance = errors.New("focus distance must be positive")
	ErrDegenerateView       = errors.New("look-from, look-at and up do not define a camera frame")
)

// degenerateEpsilon is the length below which a basis vector is considered zero
const degenerateEpsilon = 1e-12

// CameraConfig contains all parameters needed to construct a camera
type CameraConfig struct {
	AspectRatio     float64   `json:"aspectRatio"`     // Width / height
	ImageWidth      int       `json:"imageWidth"`      // Rendered image width in pixels
	SamplesPerPixel int       `json:"samplesPerPixel"` // Number of rays per pixel
	MaxBounces      int       `json:"maxBounces"`      // Maximum ray bounce depth
	VFov            float64   `json:"vfov"`            // Vertical field of view in degrees
	DefocusAngle    float64   `json:"defocusAngle"`    // Variation angle of rays through each pixel, degrees
	FocusDistance   float64   `json:"focusDistance"`   // Distance from LookFrom to the plane of perfect focus
	LookFrom        core.Vec3 `json:"lookFrom"`        // Camera position
	LookAt          core.Vec3 `json:"lookAt"`          // Point the camera looks at
	Up              core.Vec3 `json:"up"`              // World up direction
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxBounces:      50,
		VFov:            90,
		DefocusAngle:    0,
		FocusDistance:   1,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
	}
}

// ImageHeight returns the image height implied by the width and aspect ratio
func (c CameraConfig) ImageHeight() int {
	return int(float64(c.ImageWidth) / c.AspectRatio)
}

// Validate checks the configuration without building a camera
func (c CameraConfig) Validate() error {
	if c.ImageWidth < 1 {
		return fmt.Errorf("width %d: %w", c.ImageWidth, ErrInvalidImageWidth)
	}
	if !(c.AspectRatio > 0) || c.ImageHeight() < 1 {
		return fmt.Errorf("width %d, aspect ratio %g: %w", c.ImageWidth, c.AspectRatio, ErrInvalidImageHeight)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("samples %d: %w", c.SamplesPerPixel, ErrInvalidSamples)
	}
	if c.MaxBounces < 0 {
		return fmt.Errorf("max bounces %d: %w", c.MaxBounces, ErrInvalidMaxBounces)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("vfov %g: %w", c.VFov, ErrInvalidFieldOfView)
	}
	if !(c.FocusDistance > 0) {
		return fmt.Errorf("focus distance %g: %w", c.FocusDistance, ErrInvalidFocusDistance)
	}
	forward := c.LookFrom.Sub(c.LookAt)
	if forward.Len() < degenerateEpsilon {
		return fmt.Errorf("look-from equals look-at %v: %w", c.LookAt, ErrDegenerateView)
	}
	if c.Up.Cross(forward.Normalize()).Len() < degenerateEpsilon {
		return fmt.Errorf("up %v is zero or parallel to the view direction: %w", c.Up, ErrDegenerateView)
	}
	return nil
}

// Camera generates rays for rendering. All fields are derived once in
// NewCamera and never change afterwards.
type Camera struct {
	config CameraConfig

	imageWidth  int
	imageHeight int

	center core.Vec3

	// Orthonormal frame: forward points from the look-at point back to the camera
	forward core.Vec3
	right   core.Vec3
	up      core.Vec3

	pixelDeltaU core.Vec3
	pixelDeltaV core.Vec3
	pixel00Loc  core.Vec3

	defocusDiskU core.Vec3
	defocusDiskV core.Vec3
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	imageWidth := config.ImageWidth
	imageHeight := config.ImageHeight()

	// Viewport dimensions on the focus plane
	theta := mgl64.DegToRad(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * (float64(imageWidth) / float64(imageHeight))

	center := config.LookFrom

	// Unit basis vectors for the camera coordinate frame
	forward := config.LookFrom.Sub(config.LookAt).Normalize()
	right := config.Up.Cross(forward).Normalize()
	up := forward.Cross(right)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := right.Mul(viewportWidth)
	viewportV := up.Mul(-viewportHeight)

	pixelDeltaU := viewportU.Mul(1.0 / float64(imageWidth))
	pixelDeltaV := viewportV.Mul(1.0 / float64(imageHeight))

	viewportUpperLeft := center.
		Sub(forward.Mul(config.FocusDistance)).
		Sub(viewportU.Mul(0.5)).
		Sub(viewportV.Mul(0.5))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Mul(0.5))

	defocusRadius := config.FocusDistance * math.Tan(mgl64.DegToRad(config.DefocusAngle/2))

	return &Camera{
		config:       config,
		imageWidth:   imageWidth,
		imageHeight:  imageHeight,
		center:       center,
		forward:      forward,
		right:        right,
		up:           up,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		pixel00Loc:   pixel00Loc,
		defocusDiskU: right.Mul(defocusRadius),
		defocusDiskV: up.Mul(defocusRadius),
	}, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.imageWidth }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.imageHeight }

// SamplesPerPixel returns the number of samples taken per pixel
func (c *Camera) SamplesPerPixel() int { return c.config.SamplesPerPixel }

// MaxBounces returns the ray bounce budget
func (c *Camera) MaxBounces() int { return c.config.MaxBounces }

// GetRay returns a ray for pixel (i, j), jittered within the pixel and, when
// defocus is enabled, starting from a random point on the defocus disk
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := core.SampleSquare(sampler)
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Mul(float64(i) + offset[0])).
		Add(c.pixelDeltaV.Mul(float64(j) + offset[1]))

	rayOrigin := c.center
	if c.config.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(rayOrigin, pixelSample.Sub(rayOrigin))
}

// defocusDiskSample returns a random point on the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Mul(p[0])).Add(c.defocusDiskV.Mul(p[1]))
}
