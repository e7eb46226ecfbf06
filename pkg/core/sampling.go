package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator.
// It is not safe for concurrent use; give each worker its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded by seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	return NewVec3(x, y, z)
}

// Reflect calculates the reflection of v off a surface with normal n
func Reflect(v, n Vec3) Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract computes the transmitted direction through an interface using Snell's law.
// in points toward the surface, n is the unit normal on the incident side and
// iorRatio is eta_incident / eta_transmitted. It returns false on total
// internal reflection.
func Refract(in, n Vec3, iorRatio float64) (Vec3, bool) {
	v := in.Normalize()

	minusCosThetaI := v.Dot(n)
	d := 1.0 - iorRatio*iorRatio*(1.0-minusCosThetaI*minusCosThetaI)
	if d < 0 {
		return Vec3{}, false
	}

	return v.Subtract(n.Multiply(minusCosThetaI)).Multiply(iorRatio).
		Subtract(n.Multiply(math.Sqrt(d))), true
}

// SchlickFresnel approximates the Fresnel reflectance for the cosine of the
// incident angle and the ratio eta_incident / eta_transmitted
func SchlickFresnel(cosThetaI, iorRatio float64) float64 {
	r0 := (1 - iorRatio) / (1 + iorRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosThetaI, 5)
}
