package material

import (
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// sinToAxis returns the sine of the angle between d and the axis n
func sinToAxis(d, n core.Vec3) float64 {
	cos := math.Abs(d.Normalize().Dot(n))
	return math.Sqrt(math.Max(0, 1-cos*cos))
}

func TestDielectric_EnteringRatio(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(42)
	normal := core.NewVec3(0, 1, 0)
	hit := newHit(core.Vec3{}, normal)

	for _, degrees := range []float64{15, 30, 45, 70} {
		theta := core.DegreesToRadians(degrees)
		rayIn := core.NewRay(core.NewVec3(-math.Sin(theta), math.Cos(theta), 0),
			core.NewVec3(math.Sin(theta), -math.Cos(theta), 0))

		scatter, didScatter := glass.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatalf("Entering glass at %.0f° should refract", degrees)
		}

		ratio := sinToAxis(rayIn.Direction, normal) / sinToAxis(scatter.Scattered.Direction, normal)
		if math.Abs(ratio-1.5) > 1e-9 {
			t.Errorf("At %.0f°: expected sin ratio 1.5, got %f", degrees, ratio)
		}
		if scatter.Scattered.Direction.Y >= 0 {
			t.Errorf("Refracted ray should travel into the material, got %v", scatter.Scattered.Direction)
		}
		if !scatter.Attenuation.Equals(core.NewVec3(1, 1, 1)) {
			t.Errorf("Expected white attenuation, got %v", scatter.Attenuation)
		}
		if !scatter.Scattered.Origin.Equals(hit.Point) {
			t.Errorf("Scattered ray should start at the hit point, got %v", scatter.Scattered.Origin)
		}
	}
}

func TestDielectric_ExitingCriticalAngle(t *testing.T) {
	water := NewDielectric(1.333)
	sampler := core.NewSeededSampler(42)

	// Outward normal points up; the ray travels up from inside the material
	normal := core.NewVec3(0, 1, 0)
	hit := newHit(core.Vec3{}, normal)

	tests := []struct {
		name       string
		degrees    float64
		expectScat bool
	}{
		{"normal incidence", 0, true},
		{"below critical angle", 40, true},
		{"just below critical angle", 48, true},
		{"just above critical angle", 49.5, false},
		{"far above critical angle", 70, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theta := core.DegreesToRadians(tt.degrees)
			dir := core.NewVec3(math.Sin(theta), math.Cos(theta), 0)
			rayIn := core.NewRay(dir.Negate(), dir)

			scatter, didScatter := water.Scatter(rayIn, hit, sampler)
			if didScatter != tt.expectScat {
				t.Fatalf("Expected scatter=%t, got %t", tt.expectScat, didScatter)
			}
			if !didScatter {
				return
			}

			if scatter.Scattered.Direction.Y <= 0 {
				t.Errorf("Transmitted ray should leave through the top, got %v", scatter.Scattered.Direction)
			}
			if tt.degrees > 0 {
				ratio := sinToAxis(dir, normal) / sinToAxis(scatter.Scattered.Direction, normal)
				if math.Abs(ratio-1/1.333) > 1e-9 {
					t.Errorf("Expected sin ratio %f, got %f", 1/1.333, ratio)
				}
			}
		})
	}
}

func TestDielectric_FresnelReflectsOnTotalInternalReflection(t *testing.T) {
	glass := NewFresnelDielectric(1.5)
	sampler := core.NewSeededSampler(1)
	hit := newHit(core.Vec3{}, core.NewVec3(0, 1, 0))

	// Exiting at a shallow angle is beyond the critical angle
	dir := core.NewVec3(1, 0.1, 0).Normalize()
	rayIn := core.NewRay(dir.Negate(), dir)

	for i := 0; i < 10; i++ {
		scatter, didScatter := glass.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatal("Fresnel dielectric should reflect on total internal reflection")
		}
		if scatter.Scattered.Direction.Y >= 0 {
			t.Errorf("Expected reflection back into the material, got %v", scatter.Scattered.Direction)
		}
	}
}

func TestDielectric_FresnelReflectanceRate(t *testing.T) {
	glass := NewFresnelDielectric(1.5)
	sampler := core.NewSeededSampler(9)
	hit := newHit(core.Vec3{}, core.NewVec3(0, 1, 0))
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	const n = 20000
	reflections := 0
	for i := 0; i < n; i++ {
		scatter, _ := glass.Scatter(rayIn, hit, sampler)
		if scatter.Scattered.Direction.Y > 0 {
			reflections++
		}
	}

	// Normal incidence on glass reflects about 4%
	rate := float64(reflections) / n
	if math.Abs(rate-0.04) > 0.01 {
		t.Errorf("Expected reflection rate near 0.04, got %f", rate)
	}
}
