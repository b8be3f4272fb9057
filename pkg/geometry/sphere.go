package geometry

import (
	"fmt"
	"math"

	"github.com/taigrr/clipspace/pkg/math3d"
)

// Sphere is a bounding sphere. A negative radius marks it empty.
type Sphere struct {
	Center math3d.Vec3
	Radius float64
}

// NewSphere creates a sphere.
func NewSphere(center math3d.Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// EmptySphere returns the sphere that contains nothing.
func EmptySphere() Sphere {
	return Sphere{Radius: -1}
}

// SphereFromAABB returns the sphere circumscribing b.
func SphereFromAABB(b AABB) Sphere {
	return Sphere{Center: b.Center(), Radius: b.HalfExtents().Len()}
}

// IsValid reports whether the radius is non-negative.
func (s Sphere) IsValid() bool {
	return s.Radius >= 0
}

// Expand grows the sphere just enough to hold p. The first point expanded
// into an empty sphere becomes its center.
func (s Sphere) Expand(p math3d.Vec3) Sphere {
	if !s.IsValid() {
		return Sphere{Center: p}
	}
	d := p.Distance(s.Center)
	if d <= s.Radius {
		return s
	}
	r := (s.Radius + d) / 2
	dir := p.Sub(s.Center).Div(d)
	return Sphere{Center: s.Center.Add(dir.Scale(r - s.Radius)), Radius: r}
}

// ContainsPoint reports whether p lies inside or on the sphere.
func (s Sphere) ContainsPoint(p math3d.Vec3) bool {
	return p.Sub(s.Center).LenSq() <= s.Radius*s.Radius && s.IsValid()
}

// Intersects reports whether two spheres overlap or touch.
func (s Sphere) Intersects(o Sphere) bool {
	r := s.Radius + o.Radius
	return s.Center.Sub(o.Center).LenSq() <= r*r
}

// IntersectsAABB reports whether the sphere touches the box.
func (s Sphere) IntersectsAABB(b AABB) bool {
	return b.SquaredDistance(s.Center) <= s.Radius*s.Radius
}

// SignedDistance returns the distance from p to the sphere surface,
// negative inside.
func (s Sphere) SignedDistance(p math3d.Vec3) float64 {
	return p.Distance(s.Center) - s.Radius
}

// ClosestPoint returns the point of the sphere surface nearest to p.
// Points at the center map to the top of the sphere.
func (s Sphere) ClosestPoint(p math3d.Vec3) math3d.Vec3 {
	dir := p.Sub(s.Center)
	if dir.LenSq() == 0 {
		return s.Center.Add(math3d.Up().Scale(s.Radius))
	}
	return s.Center.Add(dir.Normalize().Scale(s.Radius))
}

// BoundingBox returns the tightest AABB around the sphere.
func (s Sphere) BoundingBox() AABB {
	return AABBFromCenterHalfExtents(s.Center, math3d.Splat3(s.Radius))
}

// Volume returns the sphere volume, or 0 for an empty sphere.
func (s Sphere) Volume() float64 {
	if !s.IsValid() {
		return 0
	}
	return 4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius
}

// SurfaceArea returns the sphere surface area, or 0 for an empty sphere.
func (s Sphere) SurfaceArea() float64 {
	if !s.IsValid() {
		return 0
	}
	return 4 * math.Pi * s.Radius * s.Radius
}

func (s Sphere) String() string {
	return fmt.Sprintf("Sphere{c=%v r=%.4g}", s.Center, s.Radius)
}
