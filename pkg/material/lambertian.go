package material

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// degenerateDirectionEpsilon is the squared length below which a scatter
// direction is treated as zero
const degenerateDirectionEpsilon = 1e-8

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Fraction of light reflected per channel
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// Adding a uniform unit vector to the normal gives a cosine-weighted
// direction, so the estimator weight is just the albedo.
func (l *Lambertian) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterInfo, bool) {
	direction := hit.ShadingNormal.Add(core.SampleOnUnitSphere(sampler.Get2D()))

	// The random vector can nearly cancel the normal
	if direction.LengthSquared() < degenerateDirectionEpsilon {
		direction = hit.ShadingNormal
	}

	return core.ScatterInfo{
		Attenuation: l.Albedo,
		Scattered:   core.NewRay(hit.Point, direction.Normalize()),
	}, true
}

// IsEmissive implements the Material interface
func (l *Lambertian) IsEmissive() bool {
	return false
}

// Emitted implements the Material interface
func (l *Lambertian) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Vec3 {
	return core.Vec3{X: 0, Y: 0, Z: 0}
}
