package geometry

import (
	"fmt"
	"strings"

	"github.com/taigrr/clipspace/pkg/math3d"
)

// Frustum represents the 6 planes of a view frustum.
// Planes are ordered: Left, Right, Bottom, Top, Near, Far.
// Each plane's normal points inward (toward the center of the frustum).
type Frustum struct {
	Planes [6]Plane
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

var planeNames = [6]string{"left", "right", "bottom", "top", "near", "far"}

// Classification is the result of testing a volume against a frustum.
type Classification int

const (
	Outside Classification = iota
	Intersecting
	Inside
)

func (c Classification) String() string {
	switch c {
	case Outside:
		return "outside"
	case Intersecting:
		return "intersecting"
	case Inside:
		return "inside"
	}
	return fmt.Sprintf("Classification(%d)", int(c))
}

// NewFrustum returns the unit clip cube: every plane is axis aligned, faces
// inward and sits one unit from the origin.
func NewFrustum() Frustum {
	var f Frustum
	f.Planes[FrustumLeft] = NewPlane(math3d.V3(1, 0, 0), 1)
	f.Planes[FrustumRight] = NewPlane(math3d.V3(-1, 0, 0), 1)
	f.Planes[FrustumBottom] = NewPlane(math3d.V3(0, 1, 0), 1)
	f.Planes[FrustumTop] = NewPlane(math3d.V3(0, -1, 0), 1)
	f.Planes[FrustumNear] = NewPlane(math3d.V3(0, 0, 1), 1)
	f.Planes[FrustumFar] = NewPlane(math3d.V3(0, 0, -1), 1)
	return f
}

// NewFrustumFromMatrix extracts frustum planes from a matrix.
//
// Passing a projection gives view-space planes, a view-projection gives
// world-space planes, and a model-view-projection gives planes in the
// model's local space.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	var f Frustum
	f.ExtractFromMatrix(m)
	return f
}

// ExtractFromMatrix overwrites all six planes using the Gribb/Hartmann
// method: each plane is a sum or difference of the fourth matrix row with
// one of the first three, normalized afterwards. The matrix is not
// validated; a singular or degenerate matrix yields meaningless planes.
func (f *Frustum) ExtractFromMatrix(m math3d.Mat4) {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)

	f.Planes[FrustumLeft] = PlaneFromVec4(r3.Add(r0))
	f.Planes[FrustumRight] = PlaneFromVec4(r3.Sub(r0))
	f.Planes[FrustumBottom] = PlaneFromVec4(r3.Add(r1))
	f.Planes[FrustumTop] = PlaneFromVec4(r3.Sub(r1))
	// r3+r2 bounds z >= -w. For [0,1] depth the true near plane is r2 alone;
	// the wider plane keeps culling conservative.
	f.Planes[FrustumNear] = PlaneFromVec4(r3.Add(r2))
	f.Planes[FrustumFar] = PlaneFromVec4(r3.Sub(r2))

	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
}

// Left returns the left plane.
func (f Frustum) Left() Plane { return f.Planes[FrustumLeft] }

// Right returns the right plane.
func (f Frustum) Right() Plane { return f.Planes[FrustumRight] }

// Bottom returns the bottom plane.
func (f Frustum) Bottom() Plane { return f.Planes[FrustumBottom] }

// Top returns the top plane.
func (f Frustum) Top() Plane { return f.Planes[FrustumTop] }

// Near returns the near plane.
func (f Frustum) Near() Plane { return f.Planes[FrustumNear] }

// Far returns the far plane.
func (f Frustum) Far() Plane { return f.Planes[FrustumFar] }

// Contains tests if a point is inside the frustum, using
// math3d.FloatEpsilon as the tolerance.
func (f Frustum) Contains(p math3d.Vec3) bool {
	return f.ContainsEps(p, math3d.FloatEpsilon)
}

// ContainsEps tests if a point is at least eps inside every plane.
func (f Frustum) ContainsEps(p math3d.Vec3, eps float64) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(p) < eps {
			return false
		}
	}
	return true
}

// IntersectsSphere tests if any part of the sphere may be inside the frustum.
func (f Frustum) IntersectsSphere(s Sphere) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// ContainsFullySphere tests if the whole sphere is inside the frustum.
func (f Frustum) ContainsFullySphere(s Sphere) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(s.Center) < s.Radius {
			return false
		}
	}
	return true
}

// IntersectsAABB tests if the AABB intersects or is inside the frustum.
// Returns true if any part of the AABB may be visible.
//
// For each plane only the "positive vertex" is tested: the corner furthest
// along the plane normal. If even that corner is behind a plane the whole
// box is. The test is conservative and may report boxes near frustum edges
// that are in fact outside.
func (f Frustum) IntersectsAABB(box AABB) bool {
	for i := range f.Planes {
		plane := f.Planes[i]
		if plane.SignedDistance(box.PositiveVertex(plane.Normal)) < 0 {
			return false
		}
	}
	return true
}

// ContainsFullyAABB tests if the AABB is completely inside the frustum.
// Returns true only if all 8 corners pass Contains.
func (f Frustum) ContainsFullyAABB(box AABB) bool {
	for i := range 8 {
		if !f.Contains(box.Corner(i)) {
			return false
		}
	}
	return true
}

// ClassifyAABB reports whether box is outside, straddling or inside.
func (f Frustum) ClassifyAABB(box AABB) Classification {
	switch {
	case !f.IntersectsAABB(box):
		return Outside
	case f.ContainsFullyAABB(box):
		return Inside
	default:
		return Intersecting
	}
}

// ClassifySphere reports whether s is outside, straddling or inside.
func (f Frustum) ClassifySphere(s Sphere) Classification {
	switch {
	case !f.IntersectsSphere(s):
		return Outside
	case f.ContainsFullySphere(s):
		return Inside
	default:
		return Intersecting
	}
}

// ApproxEqual reports whether every plane matches within eps.
func (f Frustum) ApproxEqual(o Frustum, eps float64) bool {
	for i := range f.Planes {
		if !f.Planes[i].ApproxEqual(o.Planes[i], eps) {
			return false
		}
	}
	return true
}

func (f Frustum) String() string {
	var sb strings.Builder
	sb.WriteString("Frustum{")
	for i, p := range f.Planes {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", planeNames[i], p)
	}
	sb.WriteByte('}')
	return sb.String()
}
