// Package geometry provides the bounding volumes and half-space planes used
// for view frustum culling.
package geometry

import (
	"fmt"
	"math"

	"github.com/taigrr/clipspace/pkg/math3d"
)

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal and D is the signed distance from origin.
// Points with a positive signed distance lie on the side the normal faces.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// NewPlane creates a plane from a normal and distance, as given.
func NewPlane(normal math3d.Vec3, d float64) Plane {
	return Plane{Normal: normal, D: d}
}

// PlaneFromVec4 creates a plane from equation coefficients (a, b, c, d).
func PlaneFromVec4(v math3d.Vec4) Plane {
	return Plane{Normal: v.Vec3(), D: v.W}
}

// PlaneFromPointNormal creates the plane through point facing normal.
// The normal is normalized first.
func PlaneFromPointNormal(point, normal math3d.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, D: -n.Dot(point)}
}

// PlaneFromPoints creates the plane through three points. The normal follows
// the winding a -> b -> c by the right-hand rule.
func PlaneFromPoints(a, b, c math3d.Vec3) Plane {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return Plane{Normal: n, D: -n.Dot(a)}
}

// Normalize scales the plane equation so the normal has unit length.
// A zero normal is left untouched.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// Normalized returns a normalized copy of the plane.
func (p Plane) Normalized() Plane {
	p.Normalize()
	return p
}

// IsNormalized reports whether |Normal| is within eps of 1.
func (p Plane) IsNormalized(eps float64) bool {
	return math.Abs(p.Normal.Len()-1) <= eps
}

// SignedDistance returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
// The result is only a true distance for a normalized plane.
func (p Plane) SignedDistance(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Distance returns the unsigned distance from the plane to a point.
func (p Plane) Distance(point math3d.Vec3) float64 {
	return math.Abs(p.SignedDistance(point))
}

// ClosestPoint projects point onto the plane.
func (p Plane) ClosestPoint(point math3d.Vec3) math3d.Vec3 {
	return point.Sub(p.Normal.Scale(p.SignedDistance(point)))
}

// IsOnPositiveSide reports whether point is at least eps in front of the plane.
func (p Plane) IsOnPositiveSide(point math3d.Vec3, eps float64) bool {
	return p.SignedDistance(point) >= eps
}

// IsOnNegativeSide reports whether point is more than eps behind the plane.
func (p Plane) IsOnNegativeSide(point math3d.Vec3, eps float64) bool {
	return p.SignedDistance(point) < -eps
}

// IsOnPlane reports whether point lies within eps of the plane.
func (p Plane) IsOnPlane(point math3d.Vec3, eps float64) bool {
	return p.Distance(point) <= eps
}

// Flip returns the plane facing the opposite direction.
func (p Plane) Flip() Plane {
	return Plane{Normal: p.Normal.Negate(), D: -p.D}
}

// Translate moves the plane by offset.
func (p Plane) Translate(offset math3d.Vec3) Plane {
	return Plane{Normal: p.Normal, D: p.D - p.Normal.Dot(offset)}
}

// Transform maps the plane through the affine transform m. Plane
// coefficients transform by the inverse transpose of m.
func (p Plane) Transform(m math3d.Mat4) Plane {
	it := m.Inverse().Transpose()
	return PlaneFromVec4(it.MulVec4(p.Vec4())).Normalized()
}

// Vec4 returns the plane equation coefficients (a, b, c, d).
func (p Plane) Vec4() math3d.Vec4 {
	return math3d.V4FromV3(p.Normal, p.D)
}

// ApproxEqual reports whether both planes match within eps.
func (p Plane) ApproxEqual(o Plane, eps float64) bool {
	return p.Vec4().ApproxEqual(o.Vec4(), eps)
}

func (p Plane) String() string {
	return fmt.Sprintf("Plane{n=%v d=%.4g}", p.Normal, p.D)
}
