package integrator

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// DefaultMaxDepth bounds the number of scatter bounces per camera ray
const DefaultMaxDepth = 64

// RecursiveIntegrator implements recursive path tracing: every path walks to
// a miss, an absorption or the depth cap. No Russian roulette is applied.
type RecursiveIntegrator struct {
	maxDepth   int
	background core.Vec3
}

// NewRecursiveIntegrator creates a new recursive integrator.
// A non-positive maxDepth selects DefaultMaxDepth.
func NewRecursiveIntegrator(maxDepth int, background core.Vec3) *RecursiveIntegrator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &RecursiveIntegrator{
		maxDepth:   maxDepth,
		background: background,
	}
}

// MaxDepth returns the bounce limit
func (ri *RecursiveIntegrator) MaxDepth() int {
	return ri.maxDepth
}

// RayColor computes the color for a camera ray
func (ri *RecursiveIntegrator) RayColor(ray core.Ray, world core.Surface, sampler core.Sampler) core.Vec3 {
	return ri.RecursiveColor(ray, world, sampler, 0)
}

// RecursiveColor computes the color for a ray that has already bounced depth times
func (ri *RecursiveIntegrator) RecursiveColor(ray core.Ray, world core.Surface, sampler core.Sampler, depth int) core.Vec3 {
	hit, isHit := world.Intersect(ray)
	if !isHit {
		return ri.background
	}

	// Surfaces without a material absorb everything
	if hit.Material == nil {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	emitted := hit.Material.Emitted(ray, hit)

	if depth < ri.maxDepth {
		if scatter, didScatter := hit.Material.Scatter(ray, hit, sampler); didScatter {
			incoming := ri.RecursiveColor(scatter.Scattered, world, sampler, depth+1)
			return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
		}
	}

	// Depth exhausted or the material absorbed the path
	return emitted
}
