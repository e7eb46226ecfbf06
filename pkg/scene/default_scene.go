package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with spheres on a ground quad under
// a sky, lit additionally by a small sphere light
func NewDefaultScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		Transform: core.LookAtTransform(
			core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
			core.NewVec3(0, 0.5, -1), // Look at the sphere center
			core.NewVec3(0, 1, 0),    // Standard up direction
		),
		Width:     400,
		Height:    225,
		VFov:      40.0,
		FocalDist: 1.0,
	}

	s := NewScene(cameraConfig)
	s.SamplesPerPixel = 200
	s.Background = core.NewVec3(0.5, 0.7, 1.0)

	// Create materials
	lib := s.Materials
	ground := lib.MustAdd("ground", material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6)))
	blue := lib.MustAdd("blue", material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	silver := lib.MustAdd("silver", material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0))
	gold := lib.MustAdd("gold", material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))
	glass := lib.MustAdd("glass", material.NewFresnelDielectric(1.5))
	lamp := lib.MustAdd("lamp", material.NewLight(core.NewVec3(15, 14, 12)))

	s.AddSurface(NewGroundQuad(core.NewVec3(0, 0, -1), 100, ground))
	s.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, blue)
	s.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, silver)
	s.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, glass)
	s.AddSphere(core.NewVec3(0.4, 0.15, -0.3), 0.15, gold)
	s.AddSphere(core.NewVec3(-0.6, 2.0, 0.2), 0.25, lamp)

	return s
}
