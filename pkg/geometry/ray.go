package geometry

import (
	"math"

	"github.com/taigrr/clipspace/pkg/math3d"
)

// Ray is a half-line from Origin along a unit Direction.
type Ray struct {
	Origin    math3d.Vec3
	Direction math3d.Vec3
}

// NewRay creates a ray, normalizing direction.
func NewRay(origin, direction math3d.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t.
func (r Ray) At(t float64) math3d.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectPlane returns the hit parameter with p. ok is false when the ray
// is parallel to the plane or the hit lies behind the origin.
func (r Ray) IntersectPlane(p Plane) (t float64, ok bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	t = -p.SignedDistance(r.Origin) / denom
	return t, t >= 0
}

// IntersectAABB returns the entry parameter of the ray into b using the slab
// method. A ray starting inside the box reports t = 0.
func (r Ray) IntersectAABB(b AABB) (t float64, ok bool) {
	tMin, tMax := 0.0, math.Inf(1)
	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := range 3 {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t0 := (lo[i] - origin[i]) * inv
		t1 := (hi[i] - origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// IntersectSphere returns the nearest non-negative hit parameter with s.
func (r Ray) IntersectSphere(s Sphere) (t float64, ok bool) {
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Direction)
	c := oc.LenSq() - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t = -b - sq
	if t < 0 {
		t = -b + sq
	}
	return t, t >= 0
}
