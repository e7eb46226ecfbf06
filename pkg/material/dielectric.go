package material

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass or water.
// The medium outside the surface is assumed to have index of refraction 1.
//
// By default it only transmits: total internal reflection absorbs the path.
// With Fresnel enabled it reflects on total internal reflection and otherwise
// chooses between reflection and refraction by Schlick's approximation.
type Dielectric struct {
	IOR     float64 // Index of refraction (e.g., 1.5 for glass)
	Fresnel bool    // Stochastically reflect by the Fresnel term
}

// NewDielectric creates a new transmitting dielectric material
func NewDielectric(ior float64) *Dielectric {
	return &Dielectric{IOR: ior}
}

// NewFresnelDielectric creates a dielectric that both reflects and refracts
func NewFresnelDielectric(ior float64) *Dielectric {
	return &Dielectric{IOR: ior, Fresnel: true}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterInfo, bool) {
	// Clear glass does not tint the light
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	normal := hit.ShadingNormal
	var iorRatio float64
	if rayIn.Direction.Dot(normal) < 0 {
		iorRatio = 1.0 / d.IOR // entering
	} else {
		iorRatio = d.IOR // exiting
		normal = normal.Negate()
	}

	refracted, canRefract := core.Refract(rayIn.Direction, normal, iorRatio)

	if !d.Fresnel {
		if !canRefract {
			return core.ScatterInfo{}, false
		}
		return core.ScatterInfo{
			Attenuation: attenuation,
			Scattered:   core.NewRay(hit.Point, refracted),
		}, true
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(normal), 1.0)

	var direction core.Vec3
	if !canRefract || core.SchlickFresnel(cosTheta, iorRatio) > sampler.Get1D() {
		direction = core.Reflect(unitDirection, normal)
	} else {
		direction = refracted
	}

	return core.ScatterInfo{
		Attenuation: attenuation,
		Scattered:   core.NewRay(hit.Point, direction),
	}, true
}

// IsEmissive implements the Material interface
func (d *Dielectric) IsEmissive() bool {
	return false
}

// Emitted implements the Material interface
func (d *Dielectric) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Vec3 {
	return core.Vec3{X: 0, Y: 0, Z: 0}
}
