package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Sphere represents a sphere centered at its local origin
type Sphere struct {
	Radius    float64
	Transform core.Transform // object-to-world
	Material  core.Material
}

// NewSphere creates a new sphere
func NewSphere(radius float64, transform core.Transform, material core.Material) *Sphere {
	return &Sphere{
		Radius:    radius,
		Transform: transform,
		Material:  material,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	local := s.Transform.Inverse().TransformRay(ray)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := local.Direction.Dot(local.Direction)
	halfB := local.Origin.Dot(local.Direction)
	c := local.Origin.Dot(local.Origin) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !local.Contains(root) {
		// Origin inside the sphere, or the near hit is clipped
		root = (-halfB + sqrtD) / a
		if !local.Contains(root) {
			return nil, false
		}
	}

	// No back-face flip: the normal always points out of the sphere
	localPoint := local.At(root)
	localNormal := localPoint.Multiply(1.0 / s.Radius)
	normal := s.Transform.TransformNormal(localNormal)

	return &core.HitRecord{
		T:               root,
		Point:           s.Transform.TransformPoint(localPoint),
		GeometricNormal: normal,
		ShadingNormal:   normal,
		Material:        s.Material,
	}, true
}
