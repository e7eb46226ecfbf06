package core

import (
	"errors"
	"math"
	"testing"
)

func TestTransform_PointRoundTrip(t *testing.T) {
	xform := Translate(NewVec3(1, -2, 3)).
		Compose(Rotate(NewVec3(1, 1, 0), 37)).
		Compose(Scale(NewVec3(2, 0.5, 3)))

	points := []Vec3{
		NewVec3(0, 0, 0),
		NewVec3(1, 2, 3),
		NewVec3(-4.5, 0.25, 10),
	}

	for _, p := range points {
		roundTrip := xform.Inverse().TransformPoint(xform.TransformPoint(p))
		if !roundTrip.EqualsApprox(p, 1e-9) {
			t.Errorf("Round trip of %v gave %v", p, roundTrip)
		}
	}
}

func TestTransform_NewTransformInverts(t *testing.T) {
	m := Translation(NewVec3(3, 4, 5)).Multiply(Rotation(NewVec3(0, 1, 0), 90)).Multiply(Scaling(NewVec3(2, 2, 2)))
	xform, err := NewTransform(m)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	product := xform.M.Multiply(xform.MInv)
	identity := Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(product[i][j]-identity[i][j]) > 1e-9 {
				t.Fatalf("M * MInv is not identity at [%d][%d]: %f", i, j, product[i][j])
			}
		}
	}
}

func TestTransform_NewTransformSingular(t *testing.T) {
	_, err := NewTransform(Scaling(NewVec3(1, 0, 1)))
	if !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("Expected ErrSingularMatrix, got %v", err)
	}
}

func TestTransform_VectorIgnoresTranslation(t *testing.T) {
	xform := Translate(NewVec3(10, 20, 30))
	v := NewVec3(1, 2, 3)

	if got := xform.TransformVector(v); !got.Equals(v) {
		t.Errorf("Expected vector unchanged %v, got %v", v, got)
	}
	if got := xform.TransformPoint(v); !got.Equals(NewVec3(11, 22, 33)) {
		t.Errorf("Expected translated point (11,22,33), got %v", got)
	}
}

func TestTransform_NormalUnderNonUniformScale(t *testing.T) {
	xform := Scale(NewVec3(1, 2, 1))
	n := xform.TransformNormal(NewVec3(1, 1, 0).Normalize())

	expected := NewVec3(0.89443, 0.44721, 0)
	if !n.EqualsApprox(expected, 1e-4) {
		t.Errorf("Expected normal %v, got %v", expected, n)
	}
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Transformed normal should be unit length, got %f", n.Length())
	}
}

func TestTransform_RayKeepsInterval(t *testing.T) {
	xform := Translate(NewVec3(0, 1, 0)).Compose(Scale(NewVec3(2, 2, 2)))
	ray := NewRayInterval(NewVec3(1, 0, 0), NewVec3(0, 0, -1), 0.5, 7)

	result := xform.TransformRay(ray)
	if result.MinT != 0.5 || result.MaxT != 7 {
		t.Errorf("Expected interval [0.5, 7], got [%f, %f]", result.MinT, result.MaxT)
	}
	if !result.Origin.Equals(NewVec3(2, 1, 0)) {
		t.Errorf("Expected origin (2,1,0), got %v", result.Origin)
	}
	if !result.Direction.Equals(NewVec3(0, 0, -2)) {
		t.Errorf("Expected direction (0,0,-2), got %v", result.Direction)
	}
}

func TestTransform_ComposeOrder(t *testing.T) {
	translate := Translate(NewVec3(1, 0, 0))
	scale := Scale(NewVec3(2, 2, 2))

	// translate * scale applies scale first
	p := translate.Compose(scale).TransformPoint(NewVec3(1, 1, 1))
	if !p.EqualsApprox(NewVec3(3, 2, 2), 1e-12) {
		t.Errorf("Expected (3,2,2), got %v", p)
	}

	p = scale.Compose(translate).TransformPoint(NewVec3(1, 1, 1))
	if !p.EqualsApprox(NewVec3(4, 2, 2), 1e-12) {
		t.Errorf("Expected (4,2,2), got %v", p)
	}
}

func TestTransform_InverseIsSwap(t *testing.T) {
	xform := Rotate(NewVec3(0, 0, 1), 30)
	inv := xform.Inverse()
	if inv.M != xform.MInv || inv.MInv != xform.M {
		t.Error("Inverse should swap M and MInv")
	}
}

func TestTransform_LookAt(t *testing.T) {
	xform := LookAtTransform(NewVec3(0, 0, 5), NewVec3(0, 0, 0), NewVec3(0, 1, 0))

	// Camera looks down its local -z axis
	forward := xform.TransformVector(NewVec3(0, 0, -1))
	if !forward.EqualsApprox(NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected forward (0,0,-1), got %v", forward)
	}

	origin := xform.TransformPoint(NewVec3(0, 0, 0))
	if !origin.EqualsApprox(NewVec3(0, 0, 5), 1e-12) {
		t.Errorf("Expected origin (0,0,5), got %v", origin)
	}

	// Analytic inverse must agree with the general inverse
	general, err := NewTransform(xform.M)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	p := NewVec3(1, 2, 3)
	if !general.Inverse().TransformPoint(p).EqualsApprox(xform.Inverse().TransformPoint(p), 1e-9) {
		t.Error("Analytic LookAt inverse differs from general inverse")
	}
}
