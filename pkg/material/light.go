package material

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Light represents a light-emitting material
type Light struct {
	Power core.Vec3 // Emitted radiance per channel
}

// NewLight creates a new emissive material
func NewLight(power core.Vec3) *Light {
	return &Light{Power: power}
}

// Scatter implements the Material interface.
// Lights don't reflect - they only emit.
func (l *Light) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterInfo, bool) {
	return core.ScatterInfo{}, false
}

// IsEmissive implements the Material interface
func (l *Light) IsEmissive() bool {
	return true
}

// Emitted returns the light's power when the ray strikes its outward-facing side
func (l *Light) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Vec3 {
	if rayIn.Direction.Dot(hit.ShadingNormal) < 0 {
		return l.Power
	}
	return core.Vec3{X: 0, Y: 0, Z: 0}
}
