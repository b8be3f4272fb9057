package geometry

import (
	"fmt"
	"math"

	"github.com/taigrr/clipspace/pkg/math3d"
)

// AABB represents an axis-aligned bounding box.
//
// The zero value is a degenerate box at the origin. Use EmptyAABB to start
// an incremental Expand: it is inverted (Min > Max) and becomes valid as soon
// as the first point is added.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns the inverted box that contains nothing.
func EmptyAABB() AABB {
	return AABB{
		Min: math3d.Splat3(math.MaxFloat64),
		Max: math3d.Splat3(-math.MaxFloat64),
	}
}

// AABBFromCenterHalfExtents creates a box around center.
func AABBFromCenterHalfExtents(center, halfExtents math3d.Vec3) AABB {
	return AABB{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

// AABBFromPoints returns the smallest box holding every point.
func AABBFromPoints(points ...math3d.Vec3) AABB {
	b := EmptyAABB()
	for _, p := range points {
		b = b.ExpandPoint(p)
	}
	return b
}

// IsValid reports whether Min <= Max on every axis.
func (b AABB) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// HalfExtents returns half the dimensions (extents from center).
func (b AABB) HalfExtents() math3d.Vec3 {
	return b.Size().Scale(0.5)
}

// Volume returns the box volume, or 0 for an invalid box.
func (b AABB) Volume() float64 {
	if !b.IsValid() {
		return 0
	}
	s := b.Size()
	return s.X * s.Y * s.Z
}

// SurfaceArea returns the box surface area, or 0 for an invalid box.
func (b AABB) SurfaceArea() float64 {
	if !b.IsValid() {
		return 0
	}
	s := b.Size()
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// Corner returns corner i in [0, 8). Bit 0 selects Max.X, bit 1 Max.Y and
// bit 2 Max.Z.
func (b AABB) Corner(i int) math3d.Vec3 {
	c := b.Min
	if i&1 != 0 {
		c.X = b.Max.X
	}
	if i&2 != 0 {
		c.Y = b.Max.Y
	}
	if i&4 != 0 {
		c.Z = b.Max.Z
	}
	return c
}

// Corners returns all eight corners.
func (b AABB) Corners() [8]math3d.Vec3 {
	var out [8]math3d.Vec3
	for i := range out {
		out[i] = b.Corner(i)
	}
	return out
}

// PositiveVertex returns the corner furthest along normal.
func (b AABB) PositiveVertex(normal math3d.Vec3) math3d.Vec3 {
	return math3d.V3(
		selectComponent(normal.X >= 0, b.Max.X, b.Min.X),
		selectComponent(normal.Y >= 0, b.Max.Y, b.Min.Y),
		selectComponent(normal.Z >= 0, b.Max.Z, b.Min.Z),
	)
}

// ExpandPoint returns the box grown to hold p.
func (b AABB) ExpandPoint(p math3d.Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// ExpandAABB returns the union of both boxes. An invalid operand is ignored.
func (b AABB) ExpandAABB(o AABB) AABB {
	if !o.IsValid() {
		return b
	}
	if !b.IsValid() {
		return o
	}
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Grow pads the box by amount on every side.
func (b AABB) Grow(amount float64) AABB {
	pad := math3d.Splat3(amount)
	return AABB{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// Translate moves the box by offset.
func (b AABB) Translate(offset math3d.Vec3) AABB {
	return AABB{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// ContainsPoint returns true if the point is inside the AABB, borders included.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsAABB returns true if o lies entirely inside b.
func (b AABB) ContainsAABB(o AABB) bool {
	return b.ContainsPoint(o.Min) && b.ContainsPoint(o.Max)
}

// Intersects returns true if the boxes overlap or touch.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// ClosestPoint returns the point of the box nearest to p.
func (b AABB) ClosestPoint(p math3d.Vec3) math3d.Vec3 {
	return p.Clamp(b.Min, b.Max)
}

// SquaredDistance returns the squared distance from p to the box, 0 inside.
func (b AABB) SquaredDistance(p math3d.Vec3) float64 {
	return b.ClosestPoint(p).Sub(p).LenSq()
}

// Transform returns an AABB that bounds the original AABB after transformation.
// This computes a new AABB that contains all 8 transformed corners.
func (b AABB) Transform(m math3d.Mat4) AABB {
	out := EmptyAABB()
	for i := range 8 {
		out = out.ExpandPoint(m.MulVec3(b.Corner(i)))
	}
	return out
}

func (b AABB) String() string {
	return fmt.Sprintf("AABB{%v - %v}", b.Min, b.Max)
}

// selectComponent returns a when cond holds, otherwise b.
func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
