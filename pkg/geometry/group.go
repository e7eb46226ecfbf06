package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Group is an ordered collection of surfaces tested as one
type Group struct {
	surfaces []core.Surface
}

// NewGroup creates a group containing the given surfaces
func NewGroup(surfaces ...core.Surface) *Group {
	return &Group{surfaces: surfaces}
}

// Add appends a surface to the group
func (g *Group) Add(s core.Surface) {
	g.surfaces = append(g.surfaces, s)
}

// Len returns the number of direct children
func (g *Group) Len() int {
	return len(g.surfaces)
}

// Surfaces returns the direct children in insertion order
func (g *Group) Surfaces() []core.Surface {
	return g.surfaces
}

// Intersect returns the nearest hit among all children. Each accepted hit
// narrows the search interval, so later children can only report closer hits.
func (g *Group) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	var closest *core.HitRecord

	for _, surface := range g.surfaces {
		if hit, ok := surface.Intersect(ray); ok {
			closest = hit
			ray.MaxT = hit.T
		}
	}

	return closest, closest != nil
}
