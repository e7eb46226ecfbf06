package material

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Metal represents a metallic material with glossy specular reflection
type Metal struct {
	Albedo    core.Vec3 // Metal color
	Roughness float64   // 0.0 = perfect mirror, larger values blur the reflection
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, roughness float64) *Metal {
	if roughness < 0.0 {
		roughness = 0.0
	}
	return &Metal{Albedo: albedo, Roughness: roughness}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterInfo, bool) {
	reflected := core.Reflect(rayIn.Direction, hit.ShadingNormal)

	// The perturbation is not scaled by the ray speed, so a longer incident
	// direction blurs less
	if m.Roughness > 0 {
		reflected = reflected.Add(core.SampleOnUnitSphere(sampler.Get2D()).Multiply(m.Roughness))
	}
	direction := reflected.Normalize()

	// Directions below the surface are absorbed
	if direction.Dot(hit.ShadingNormal) <= 0 {
		return core.ScatterInfo{}, false
	}

	return core.ScatterInfo{
		Attenuation: m.Albedo,
		Scattered:   core.NewRay(hit.Point, direction),
	}, true
}

// IsEmissive implements the Material interface
func (m *Metal) IsEmissive() bool {
	return false
}

// Emitted implements the Material interface
func (m *Metal) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Vec3 {
	return core.Vec3{X: 0, Y: 0, Z: 0}
}
