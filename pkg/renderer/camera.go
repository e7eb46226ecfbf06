package renderer

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to construct a camera
type CameraConfig struct {
	Transform core.Transform // Camera-to-world transform
	Width     int            // Image width in pixels
	Height    int            // Image height in pixels
	VFov      float64        // Vertical field of view in degrees
	FocalDist float64        // Distance from the eye to the image plane
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Transform: core.IdentityTransform(),
		Width:     512,
		Height:    512,
		VFov:      80.0,
		FocalDist: 1.0,
	}
}

// Camera is a pinhole camera looking down its local -z axis, with the image
// plane at z = -FocalDist
type Camera struct {
	transform      core.Transform
	imagePlaneSize core.Vec2
	width, height  int
	focalDist      float64
}

// NewCamera creates a camera from config
func NewCamera(config CameraConfig) *Camera {
	halfHeight := config.FocalDist * math.Tan(core.DegreesToRadians(config.VFov)/2)
	halfWidth := halfHeight * float64(config.Width) / float64(config.Height)

	return &Camera{
		transform:      config.Transform,
		imagePlaneSize: core.NewVec2(2*halfWidth, 2*halfHeight),
		width:          config.Width,
		height:         config.Height,
		focalDist:      config.FocalDist,
	}
}

// GenerateRay returns the world-space ray through the image-plane position
// sample, given in continuous pixel coordinates with y growing downward
func (c *Camera) GenerateRay(sample core.Vec2) core.Ray {
	u := sample.X/float64(c.width) - 0.5
	v := 0.5 - sample.Y/float64(c.height)

	local := core.NewRay(
		core.NewVec3(0, 0, 0),
		core.NewVec3(u*c.imagePlaneSize.X, v*c.imagePlaneSize.Y, -c.focalDist),
	)
	return c.transform.TransformRay(local)
}

// Resolution returns the image size in pixels
func (c *Camera) Resolution() (width, height int) {
	return c.width, c.height
}

// ImagePlaneSize returns the full width and height of the image plane
func (c *Camera) ImagePlaneSize() core.Vec2 {
	return c.imagePlaneSize
}
