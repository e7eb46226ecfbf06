package scene

import (
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

func TestCornellScene_CenterRayHitsBackWall(t *testing.T) {
	s := NewCornellScene()
	w, h := s.GetCamera().Resolution()

	ray := s.GetCamera().GenerateRay(core.NewVec2(float64(w)/2, float64(h)/2))
	hit, ok := s.GetWorld().Intersect(ray)
	if !ok {
		t.Fatal("Center ray should hit the back wall")
	}
	if math.Abs(hit.Point.Z-cornellBoxSize) > 1e-6 {
		t.Errorf("Expected hit on z=%v, got %v", cornellBoxSize, hit.Point)
	}

	white, err := s.Materials.Find("white")
	if err != nil {
		t.Fatalf("white material missing: %v", err)
	}
	if hit.Material != white {
		t.Error("Back wall should be white")
	}
}

func TestCornellScene_WallsFaceInward(t *testing.T) {
	s := NewCornellScene()
	center := core.NewVec3(cornellBoxSize/2, cornellBoxSize/2, cornellBoxSize/2)

	directions := []core.Vec3{
		core.NewVec3(0, -1, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(-1, 0, 0),
		core.NewVec3(1, 0, 0),
	}
	for _, d := range directions {
		// Offset so no ray meets the light or a sphere first
		ray := core.NewRay(center.Add(core.NewVec3(100, 0, -100)), d)
		hit, ok := s.GetWorld().Intersect(ray)
		if !ok {
			t.Fatalf("Ray %v escaped the box", d)
		}
		if hit.ShadingNormal.Dot(d) >= 0 {
			t.Errorf("Wall hit along %v has outward normal %v", d, hit.ShadingNormal)
		}
	}
}

func TestCornellScene_LightFacesDown(t *testing.T) {
	s := NewCornellScene()
	ray := core.NewRay(core.NewVec3(cornellBoxSize/2, 300, cornellBoxSize/2), core.NewVec3(0, 1, 0))

	hit, ok := s.GetWorld().Intersect(ray)
	if !ok || !hit.Material.IsEmissive() {
		t.Fatal("Upward ray from the box center should hit the light")
	}
	if e := hit.Material.Emitted(ray, hit); !e.Equals(core.NewVec3(15, 15, 15)) {
		t.Errorf("Light should emit toward the room, got %v", e)
	}
}

func TestDefaultScene(t *testing.T) {
	s := NewDefaultScene()

	if s.GetSamplesPerPixel() != 200 {
		t.Errorf("Expected 200 spp, got %d", s.GetSamplesPerPixel())
	}
	if s.Materials.Len() != 6 {
		t.Errorf("Expected 6 named materials, got %d", s.Materials.Len())
	}

	// Straight down from above the ground lands on the ground quad
	ray := core.NewRay(core.NewVec3(5, 3, 5), core.NewVec3(0, -1, 0))
	hit, ok := s.GetWorld().Intersect(ray)
	if !ok {
		t.Fatal("Expected to hit the ground")
	}
	if !hit.ShadingNormal.EqualsApprox(core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("Ground should face up, got %v", hit.ShadingNormal)
	}

	// Straight up escapes to the sky
	if _, ok := s.GetWorld().Intersect(core.NewRay(core.NewVec3(5, 3, 5), core.NewVec3(0, 1, 0))); ok {
		t.Error("Upward ray should escape")
	}
}

func TestScene_ImplementsRendererScene(t *testing.T) {
	var _ renderer.Scene = NewDefaultScene()

	s := NewScene(renderer.DefaultCameraConfig())
	if s.GetSamplesPerPixel() != DefaultSamplesPerPixel {
		t.Errorf("Expected default samples, got %d", s.GetSamplesPerPixel())
	}
	if s.GetSurfaceCount() != 0 {
		t.Errorf("New scene should be empty")
	}
	s.AddSphere(core.NewVec3(0, 0, -2), 1, nil)
	if s.GetSurfaceCount() != 1 {
		t.Errorf("Expected 1 surface, got %d", s.GetSurfaceCount())
	}
}

func TestSceneRendersSmall(t *testing.T) {
	s := NewCornellScene()
	config := s.CameraConfig
	config.Width = 12
	config.Height = 12
	s.Camera = renderer.NewCamera(config)
	s.SamplesPerPixel = 2

	img, stats := renderer.NewRaytracer(s, renderer.SamplingConfig{Seed: 1, TileSize: 4}, nil).Render()
	if img.Width() != 12 || stats.TotalPixels != 144 {
		t.Errorf("Unexpected render: %dx%d, %+v", img.Width(), img.Height(), stats)
	}
	if stats.NonFinitePixels != 0 || stats.NegativePixels != 0 {
		t.Errorf("Invalid pixels: %+v", stats)
	}
}
