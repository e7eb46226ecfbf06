package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// First convert to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	// Cube the values
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// Convert LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	// Clamp to [0, 1] range
	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

// NewSphereGridScene creates a scene with a grid of colored metal spheres on
// a gray ground, under a sky and a large warm sphere light
func NewSphereGridScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		Transform: core.LookAtTransform(
			core.NewVec3(4.5, 6, 18),    // Farther back and slightly above the grid
			core.NewVec3(4.5, 0.8, 4.5), // Center of the grid
			core.NewVec3(0, 1, 0),
		),
		Width:     640,
		Height:    360,
		VFov:      40.0,
		FocalDist: 1.0,
	}

	s := NewScene(cameraConfig)
	s.SamplesPerPixel = 100
	s.Background = core.NewVec3(0.5, 0.7, 1.0)

	lib := s.Materials
	sun := lib.MustAdd("sun", material.NewLight(core.NewVec3(12.0, 11.5, 10.0)))
	ground := lib.MustAdd("ground", material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	s.AddSphere(core.NewVec3(20, 25, 20), 8, sun)
	s.AddSurface(NewGroundQuad(core.NewVec3(4.5, 0, 4.5), 200, ground))

	// Fit the grid into roughly 9x9 units
	const gridSize = 10
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue varies along x, chroma along z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
			metal := lib.MustAdd(fmt.Sprintf("metal_%d_%d", i, j), material.NewMetal(oklchToRGB(lightness, chroma, hue), roughness))

			s.AddSphere(core.NewVec3(x, sphereRadius, z), sphereRadius, metal)
		}
	}

	return s
}
