package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// MockMaterial implements core.Material for testing
type MockMaterial struct {
	emission    core.Vec3
	attenuation core.Vec3
	scatters    bool
	scatterFn   func(rayIn core.Ray, hit *core.HitRecord) core.Ray
}

func (m *MockMaterial) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterInfo, bool) {
	if !m.scatters {
		return core.ScatterInfo{}, false
	}
	scattered := core.NewRay(hit.Point, rayIn.Direction)
	if m.scatterFn != nil {
		scattered = m.scatterFn(rayIn, hit)
	}
	return core.ScatterInfo{Attenuation: m.attenuation, Scattered: scattered}, true
}
func (m *MockMaterial) IsEmissive() bool { return m.emission != (core.Vec3{}) }
func (m *MockMaterial) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Vec3 {
	return m.emission
}

// MockSurface implements core.Surface for testing
type MockSurface struct {
	hitFn func(ray core.Ray) (*core.HitRecord, bool)
	calls int
}

func (m *MockSurface) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	m.calls++
	return m.hitFn(ray)
}

// alwaysHit returns a surface that every ray strikes with the given material
func alwaysHit(mat core.Material) *MockSurface {
	return &MockSurface{hitFn: func(ray core.Ray) (*core.HitRecord, bool) {
		return &core.HitRecord{
			T:               1.0,
			Point:           ray.At(1.0),
			GeometricNormal: ray.Direction.Negate().Normalize(),
			ShadingNormal:   ray.Direction.Negate().Normalize(),
			Material:        mat,
		}, true
	}}
}

func TestRecursiveIntegrator_MissReturnsBackground(t *testing.T) {
	background := core.NewVec3(0.2, 0.3, 0.4)
	integrator := NewRecursiveIntegrator(DefaultMaxDepth, background)
	world := &MockSurface{hitFn: func(ray core.Ray) (*core.HitRecord, bool) { return nil, false }}

	color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1))
	if !color.Equals(background) {
		t.Errorf("Expected background %v, got %v", background, color)
	}
}

func TestRecursiveIntegrator_DepthTermination(t *testing.T) {
	tests := []struct {
		name     string
		maxDepth int
	}{
		{"depth 1", 1},
		{"depth 3", 3},
		{"default depth", DefaultMaxDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A hall of mirrors: every ray hits and scatters forever
			mat := &MockMaterial{
				emission:    core.NewVec3(1, 1, 1),
				attenuation: core.NewVec3(0.5, 0.5, 0.5),
				scatters:    true,
			}
			world := alwaysHit(mat)
			integrator := NewRecursiveIntegrator(tt.maxDepth, core.Vec3{})

			color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1))

			if world.calls != tt.maxDepth+1 {
				t.Errorf("Expected %d intersections, got %d", tt.maxDepth+1, world.calls)
			}

			// Geometric series of emission attenuated by 0.5 per bounce
			expected := 2.0 * (1 - math.Pow(0.5, float64(tt.maxDepth+1)))
			if math.Abs(color.X-expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", expected, color.X)
			}
		})
	}
}

func TestRecursiveIntegrator_AbsorptionReturnsEmission(t *testing.T) {
	mat := &MockMaterial{emission: core.NewVec3(3, 2, 1), scatters: false}
	world := alwaysHit(mat)
	integrator := NewRecursiveIntegrator(DefaultMaxDepth, core.NewVec3(9, 9, 9))

	color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1))
	if !color.Equals(core.NewVec3(3, 2, 1)) {
		t.Errorf("Expected emission only, got %v", color)
	}
	if world.calls != 1 {
		t.Errorf("Absorbed path should stop after one intersection, got %d", world.calls)
	}
}

func TestRecursiveIntegrator_NilMaterialIsBlack(t *testing.T) {
	world := alwaysHit(nil)
	integrator := NewRecursiveIntegrator(DefaultMaxDepth, core.NewVec3(1, 1, 1))

	color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1))
	if !color.Equals(core.Vec3{}) {
		t.Errorf("Expected black for a surface without material, got %v", color)
	}
}

func TestRecursiveIntegrator_DefaultDepth(t *testing.T) {
	if NewRecursiveIntegrator(0, core.Vec3{}).MaxDepth() != DefaultMaxDepth {
		t.Errorf("Non-positive depth should select %d", DefaultMaxDepth)
	}
}

func TestRecursiveIntegrator_DiffuseSphereUnderUniformSky(t *testing.T) {
	// Bounces off a convex sphere always escape, so the estimate is exactly albedo * sky
	albedo := core.NewVec3(0.25, 0.5, 0.75)
	sky := core.NewVec3(1, 1, 1)
	sphere := geometry.NewSphere(1, core.Translate(core.NewVec3(0, 0, -3)), material.NewLambertian(albedo))
	world := geometry.NewGroup(sphere)
	integrator := NewRecursiveIntegrator(DefaultMaxDepth, sky)
	sampler := core.NewSeededSampler(42)

	for i := 0; i < 100; i++ {
		ray := core.NewRay(core.Vec3{}, core.NewVec3(0.1, -0.1, -1))
		color := integrator.RayColor(ray, world, sampler)
		if !color.EqualsApprox(albedo, 1e-12) {
			t.Fatalf("Expected %v, got %v", albedo, color)
		}
	}
}

func TestRecursiveIntegrator_LightSeenThroughGlass(t *testing.T) {
	// Camera looks through a glass slab (two quads) at a light
	glass := material.NewDielectric(1.5)
	light := material.NewLight(core.NewVec3(5, 5, 5))

	world := geometry.NewGroup(
		geometry.NewQuad(core.NewVec2(4, 4), core.Translate(core.NewVec3(0, 0, -1)), glass),
		geometry.NewQuad(core.NewVec2(4, 4), core.Translate(core.NewVec3(0, 0, -1.5)), glass),
		geometry.NewQuad(core.NewVec2(4, 4), core.Translate(core.NewVec3(0, 0, -5)), light),
	)
	integrator := NewRecursiveIntegrator(DefaultMaxDepth, core.Vec3{})

	color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1))
	if !color.EqualsApprox(core.NewVec3(5, 5, 5), 1e-9) {
		t.Errorf("Expected light power through clear glass, got %v", color)
	}
}

func TestRecursiveIntegrator_NonNegative(t *testing.T) {
	world := geometry.NewGroup(
		geometry.NewSphere(1, core.Translate(core.NewVec3(0, 0, -3)), material.NewMetal(core.NewVec3(0.9, 0.8, 0.7), 0.3)),
		geometry.NewSphere(0.5, core.Translate(core.NewVec3(1.2, 0, -2.5)), material.NewFresnelDielectric(1.5)),
		geometry.NewQuad(core.NewVec2(20, 20),
			core.Translate(core.NewVec3(0, -1, 0)).Compose(core.Rotate(core.NewVec3(1, 0, 0), -90)),
			material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewQuad(core.NewVec2(2, 2),
			core.Translate(core.NewVec3(0, 3, -3)).Compose(core.Rotate(core.NewVec3(1, 0, 0), 90)),
			material.NewLight(core.NewVec3(10, 10, 10))),
	)
	integrator := NewRecursiveIntegrator(DefaultMaxDepth, core.NewVec3(0.1, 0.1, 0.2))
	sampler := core.NewSeededSampler(5)

	for i := 0; i < 2000; i++ {
		dir := core.NewVec3(sampler.Get1D()-0.5, sampler.Get1D()-0.5, -1)
		color := integrator.RayColor(core.NewRay(core.Vec3{}, dir), world, sampler)
		if color.IsNegative() || !color.IsFinite() {
			t.Fatalf("Sample %d produced invalid color %v", i, color)
		}
	}
}
