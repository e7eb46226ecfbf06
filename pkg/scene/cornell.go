package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// cornellBoxSize is the edge length of the standard Cornell box
const cornellBoxSize = 555.0

// NewCornellScene creates a classic Cornell box scene with quad walls and area lighting
func NewCornellScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		Transform: core.LookAtTransform(
			core.NewVec3(278, 278, -800), // Position camera outside the box looking in
			core.NewVec3(278, 278, 0),    // Look at the center of the box
			core.NewVec3(0, 1, 0),
		),
		Width:     400,
		Height:    400,
		VFov:      40.0,
		FocalDist: 1.0,
	}

	s := NewScene(cameraConfig)
	s.SamplesPerPixel = 150
	s.Background = core.Vec3{} // Closed box, black outside

	lib := s.Materials
	white := lib.MustAdd("white", material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))
	red := lib.MustAdd("red", material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05)))
	green := lib.MustAdd("green", material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15)))
	lamp := lib.MustAdd("lamp", material.NewLight(core.NewVec3(15, 15, 15)))
	metal := lib.MustAdd("metal", material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.0))
	glass := lib.MustAdd("glass", material.NewFresnelDielectric(1.5))

	half := cornellBoxSize / 2
	xAxis := core.NewVec3(1, 0, 0)
	yAxis := core.NewVec3(0, 1, 0)

	// Every wall faces into the box
	s.AddSurface(wall(core.NewVec3(half, 0, half), xAxis, -90, white))              // floor
	s.AddSurface(wall(core.NewVec3(half, cornellBoxSize, half), xAxis, 90, white))  // ceiling
	s.AddSurface(wall(core.NewVec3(half, half, cornellBoxSize), yAxis, 180, white)) // back
	s.AddSurface(wall(core.NewVec3(0, half, half), yAxis, 90, red))                 // left
	s.AddSurface(wall(core.NewVec3(cornellBoxSize, half, half), yAxis, -90, green)) // right

	// Ceiling light, slightly below the ceiling and facing down
	lightTransform := core.Translate(core.NewVec3(half, cornellBoxSize-1, half)).Compose(core.Rotate(xAxis, 90))
	s.AddSurface(geometry.NewQuad(core.NewVec2(130, 130), lightTransform, lamp))

	s.AddSphere(core.NewVec3(185, 82.5, 169), 82.5, metal)
	s.AddSphere(core.NewVec3(370, 90, 351), 90, glass)

	return s
}

// wall creates a box-sized quad centered at center, rotated from facing +z
func wall(center, axis core.Vec3, degrees float64, mat core.Material) *geometry.Quad {
	transform := core.Translate(center).Compose(core.Rotate(axis, degrees))
	return geometry.NewQuad(core.NewVec2(cornellBoxSize, cornellBoxSize), transform, mat)
}
