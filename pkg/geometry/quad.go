package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// quadParallelEpsilon is the smallest local z direction treated as non-parallel
const quadParallelEpsilon = 1e-5

// Quad represents a Size.X by Size.Y rectangle centered at its local origin,
// lying in the local x-y plane and facing +z
type Quad struct {
	Size      core.Vec2
	Transform core.Transform // object-to-world
	Material  core.Material
}

// NewQuad creates a new quad
func NewQuad(size core.Vec2, transform core.Transform, material core.Material) *Quad {
	return &Quad{
		Size:      size,
		Transform: transform,
		Material:  material,
	}
}

// Intersect tests if a ray intersects with the quad
func (q *Quad) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	local := q.Transform.Inverse().TransformRay(ray)

	// Ray parallel to the quad's plane
	if math.Abs(local.Direction.Z) < quadParallelEpsilon {
		return nil, false
	}

	// Intersection with the z=0 plane
	t := -local.Origin.Z / local.Direction.Z
	if !local.Contains(t) {
		return nil, false
	}

	p := local.At(t)
	if math.Abs(p.X) > q.Size.X*0.5 || math.Abs(p.Y) > q.Size.Y*0.5 {
		return nil, false
	}

	normal := q.Transform.TransformNormal(core.NewVec3(0, 0, 1))
	return &core.HitRecord{
		T:               t,
		Point:           q.Transform.TransformPoint(p),
		GeometricNormal: normal,
		ShadingNormal:   normal,
		Material:        q.Material,
	}, true
}
