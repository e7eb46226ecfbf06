package core

import "math"

// RayEpsilon is the default start of a ray's valid interval, keeping scattered
// rays from re-hitting the surface they leave
const RayEpsilon = 0.001

// Ray represents a ray segment with an origin, a direction and the valid
// parametric interval [MinT, MaxT]. Direction is not required to be unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	MinT      float64
	MaxT      float64
}

// NewRay creates a ray covering [RayEpsilon, +Inf)
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, MinT: RayEpsilon, MaxT: math.Inf(1)}
}

// NewRayInterval creates a ray with an explicit valid interval
func NewRayInterval(origin, direction Vec3, minT, maxT float64) Ray {
	return Ray{Origin: origin, Direction: direction, MinT: minT, MaxT: maxT}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Contains reports whether t lies inside the ray's valid interval
func (r Ray) Contains(t float64) bool {
	return t >= r.MinT && t <= r.MaxT
}
