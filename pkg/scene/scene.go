package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// DefaultSamplesPerPixel is used when a scene does not specify a sample count
const DefaultSamplesPerPixel = 1

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera          *renderer.Camera
	CameraConfig    renderer.CameraConfig
	Surfaces        *geometry.Group   // Top-level surfaces, intersected as one group
	SamplesPerPixel int               // Samples per pixel requested by the scene
	Background      core.Vec3         // Radiance returned by rays that escape
	Materials       *material.Library // Named materials the surfaces refer to
}

// NewScene creates an empty scene viewed through cameraConfig
func NewScene(cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		Camera:          renderer.NewCamera(cameraConfig),
		CameraConfig:    cameraConfig,
		Surfaces:        geometry.NewGroup(),
		SamplesPerPixel: DefaultSamplesPerPixel,
		Materials:       material.NewLibrary(),
	}
}

// AddSurface appends a surface to the top-level group
func (s *Scene) AddSurface(surface core.Surface) {
	s.Surfaces.Add(surface)
}

// AddSphere adds a sphere of the given radius centered at center
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat core.Material) {
	s.AddSurface(geometry.NewSphere(radius, core.Translate(center), mat))
}

// NewGroundQuad creates a horizontal square of edge size centered at center,
// facing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, mat core.Material) *geometry.Quad {
	transform := core.Translate(center).Compose(core.Rotate(core.NewVec3(1, 0, 0), -90))
	return geometry.NewQuad(core.NewVec2(size, size), transform, mat)
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld returns the surface every camera ray is traced against
func (s *Scene) GetWorld() core.Surface {
	return s.Surfaces
}

// GetBackground returns the escape radiance
func (s *Scene) GetBackground() core.Vec3 {
	return s.Background
}

// GetSamplesPerPixel returns the scene's sample count
func (s *Scene) GetSamplesPerPixel() int {
	return s.SamplesPerPixel
}

// GetSurfaceCount returns the number of top-level surfaces
func (s *Scene) GetSurfaceCount() int {
	return s.Surfaces.Len()
}
