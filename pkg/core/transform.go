package core

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Mat4 is a row-major 4x4 matrix: m[row][col]. Points are column vectors,
// so the translation lives in the last column.
type Mat4 [4][4]float64

// ErrSingularMatrix is returned when a transform matrix cannot be inverted
var ErrSingularMatrix = errors.New("transform matrix is singular")

// Identity returns the 4x4 identity matrix
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a matrix that translates by offset
func Translation(offset Vec3) Mat4 {
	m := Identity()
	m[0][3] = offset.X
	m[1][3] = offset.Y
	m[2][3] = offset.Z
	return m
}

// Scaling returns a matrix that scales each axis independently
func Scaling(factors Vec3) Mat4 {
	m := Identity()
	m[0][0] = factors.X
	m[1][1] = factors.Y
	m[2][2] = factors.Z
	return m
}

// Rotation returns a right-handed rotation of degrees around axis
func Rotation(axis Vec3, degrees float64) Mat4 {
	a := axis.Normalize()
	theta := DegreesToRadians(degrees)
	c := math.Cos(theta)
	s := math.Sin(theta)
	t := 1 - c

	return Mat4{
		{t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y, 0},
		{t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X, 0},
		{t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c, 0},
		{0, 0, 0, 1},
	}
}

// LookAt returns a camera-to-world matrix placing the origin at from, looking
// toward at along local -z with local +y as close to up as possible
func LookAt(from, at, up Vec3) Mat4 {
	n := from.Subtract(at).Normalize()
	u := up.Cross(n).Normalize()
	v := n.Cross(u).Normalize()

	return Mat4{
		{u.X, v.X, n.X, from.X},
		{u.Y, v.Y, n.Y, from.Y},
		{u.Z, v.Z, n.Z, from.Z},
		{0, 0, 0, 1},
	}
}

// Multiply returns the matrix product m * other
func (m Mat4) Multiply(other Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			result[i][j] = sum
		}
	}
	return result
}

// Transpose returns the transpose of m
func (m Mat4) Transpose() Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			result[i][j] = m[j][i]
		}
	}
	return result
}

// MulPoint applies m to the homogeneous point (p, 1) and dehomogenizes
func (m Mat4) MulPoint(p Vec3) Vec3 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w != 1 && w != 0 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// MulVector applies m to the homogeneous vector (v, 0)
func (m Mat4) MulVector(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Inverse computes the general inverse of m
func (m Mat4) Inverse() (Mat4, error) {
	data := make([]float64, 0, 16)
	for i := 0; i < 4; i++ {
		data = append(data, m[i][:]...)
	}

	var inv mat.Dense
	if err := inv.Inverse(mat.NewDense(4, 4, data)); err != nil {
		// An ill-conditioned result is still an inverse; only singular input fails
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return Mat4{}, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
		}
	}

	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			result[i][j] = inv.At(i, j)
		}
	}
	return result, nil
}

// Transform is an affine transformation together with its cached inverse
type Transform struct {
	M    Mat4 // object-to-world
	MInv Mat4 // world-to-object
}

// IdentityTransform returns the transform that leaves everything unchanged
func IdentityTransform() Transform {
	return Transform{M: Identity(), MInv: Identity()}
}

// NewTransform creates a transform from m, inverting it once
func NewTransform(m Mat4) (Transform, error) {
	inv, err := m.Inverse()
	if err != nil {
		return Transform{}, err
	}
	return Transform{M: m, MInv: inv}, nil
}

// NewTransformWithInverse creates a transform from a matrix and its known inverse.
// The caller guarantees inv is the inverse of m.
func NewTransformWithInverse(m, inv Mat4) Transform {
	return Transform{M: m, MInv: inv}
}

// Translate returns a translation transform
func Translate(offset Vec3) Transform {
	return Transform{M: Translation(offset), MInv: Translation(offset.Negate())}
}

// Scale returns a non-uniform scaling transform. Zero factors are singular.
func Scale(factors Vec3) Transform {
	return Transform{
		M:    Scaling(factors),
		MInv: Scaling(NewVec3(1/factors.X, 1/factors.Y, 1/factors.Z)),
	}
}

// Rotate returns a rotation of degrees around axis
func Rotate(axis Vec3, degrees float64) Transform {
	r := Rotation(axis, degrees)
	return Transform{M: r, MInv: r.Transpose()}
}

// LookAtTransform returns the camera-to-world transform built by LookAt
func LookAtTransform(from, at, up Vec3) Transform {
	m := LookAt(from, at, up)

	// Inverse of [R | t] is [R^T | -R^T t]
	inv := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			inv[i][j] = m[j][i]
		}
	}
	t := inv.MulVector(from)
	inv[0][3] = -t.X
	inv[1][3] = -t.Y
	inv[2][3] = -t.Z

	return Transform{M: m, MInv: inv}
}

// Compose returns t * rhs, which applies rhs first and then t
func (t Transform) Compose(rhs Transform) Transform {
	return Transform{
		M:    t.M.Multiply(rhs.M),
		MInv: rhs.MInv.Multiply(t.MInv),
	}
}

// Inverse swaps the matrix and its inverse
func (t Transform) Inverse() Transform {
	return Transform{M: t.MInv, MInv: t.M}
}

// TransformPoint transforms a position; translations apply
func (t Transform) TransformPoint(p Vec3) Vec3 {
	return t.M.MulPoint(p)
}

// TransformVector transforms a direction; translations do not apply
func (t Transform) TransformVector(v Vec3) Vec3 {
	return t.M.MulVector(v)
}

// TransformNormal transforms a surface normal by the inverse transpose of M
// and returns it re-normalized
func (t Transform) TransformNormal(n Vec3) Vec3 {
	inv := &t.MInv
	return Vec3{
		X: inv[0][0]*n.X + inv[1][0]*n.Y + inv[2][0]*n.Z,
		Y: inv[0][1]*n.X + inv[1][1]*n.Y + inv[2][1]*n.Z,
		Z: inv[0][2]*n.X + inv[1][2]*n.Y + inv[2][2]*n.Z,
	}.Normalize()
}

// TransformRay transforms a ray's origin and direction, keeping its interval
func (t Transform) TransformRay(r Ray) Ray {
	return Ray{
		Origin:    t.TransformPoint(r.Origin),
		Direction: t.TransformVector(r.Direction),
		MinT:      r.MinT,
		MaxT:      r.MaxT,
	}
}

// DegreesToRadians converts an angle in degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
