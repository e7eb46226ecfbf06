package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-surface intersection.
// All fields are in world space.
type HitRecord struct {
	T               float64  // Parameter t along the ray
	Point           Vec3     // World-space intersection point
	GeometricNormal Vec3     // Geometric normal at the intersection
	ShadingNormal   Vec3     // Shading normal (same as geometric, no interpolation)
	Material        Material // Material of the hit surface, may be nil
}

// ScatterInfo contains the result of material scattering
type ScatterInfo struct {
	Attenuation Vec3 // Fraction of light retained per channel
	Scattered   Ray  // The scattered ray
}

// Material interface for objects that respond to incident light
type Material interface {
	// Scatter returns the scattered ray and attenuation, or false if the
	// material absorbed the incident ray
	Scatter(rayIn Ray, hit *HitRecord, sampler Sampler) (ScatterInfo, bool)

	// IsEmissive reports whether the material emits light
	IsEmissive() bool

	// Emitted returns the light emitted toward the incident ray
	Emitted(rayIn Ray, hit *HitRecord) Vec3
}

// Surface interface for geometry that can be intersected by rays.
// The ray is taken by value, so a surface may narrow its own copy of the
// interval without the caller observing it.
type Surface interface {
	Intersect(ray Ray) (*HitRecord, bool)
}
