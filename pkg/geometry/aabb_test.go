package geometry

import (
	"math"
	"testing"

	"github.com/taigrr/clipspace/pkg/math3d"
)

func TestAABBBasics(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -2, -3), math3d.V3(1, 2, 3))

	if c := box.Center(); c != (math3d.Vec3{}) {
		t.Errorf("center = %v, want (0, 0, 0)", c)
	}
	if s := box.Size(); s != math3d.V3(2, 4, 6) {
		t.Errorf("size = %v, want (2, 4, 6)", s)
	}
	if h := box.HalfExtents(); h != math3d.V3(1, 2, 3) {
		t.Errorf("half extents = %v, want (1, 2, 3)", h)
	}
	if v := box.Volume(); v != 48 {
		t.Errorf("volume = %v, want 48", v)
	}
	if a := box.SurfaceArea(); a != 88 {
		t.Errorf("surface area = %v, want 88", a)
	}
}

func TestEmptyAABB(t *testing.T) {
	empty := EmptyAABB()
	if empty.IsValid() {
		t.Fatal("empty AABB should be invalid")
	}
	if empty.Volume() != 0 || empty.SurfaceArea() != 0 {
		t.Error("empty AABB should have no volume or area")
	}

	p := math3d.V3(3, -1, 2)
	one := empty.ExpandPoint(p)
	if !one.IsValid() || one.Min != p || one.Max != p {
		t.Errorf("expanding empty box by %v = %v", p, one)
	}

	if got := empty.ExpandAABB(one); got != one {
		t.Errorf("empty ∪ box = %v, want %v", got, one)
	}
	if got := one.ExpandAABB(empty); got != one {
		t.Errorf("box ∪ empty = %v, want %v", got, one)
	}
}

func TestAABBFromPoints(t *testing.T) {
	box := AABBFromPoints(
		math3d.V3(1, 5, -2),
		math3d.V3(-3, 0, 4),
		math3d.V3(2, 2, 2),
	)
	want := NewAABB(math3d.V3(-3, 0, -2), math3d.V3(2, 5, 4))
	if box != want {
		t.Errorf("AABBFromPoints = %v, want %v", box, want)
	}

	centered := AABBFromCenterHalfExtents(math3d.V3(1, 1, 1), math3d.V3(1, 2, 3))
	if centered != NewAABB(math3d.V3(0, -1, -2), math3d.V3(2, 3, 4)) {
		t.Errorf("AABBFromCenterHalfExtents = %v", centered)
	}
}

func TestAABBCorners(t *testing.T) {
	box := NewAABB(math3d.V3(0, 0, 0), math3d.V3(1, 2, 3))

	tests := []struct {
		index int
		want  math3d.Vec3
	}{
		{0, math3d.V3(0, 0, 0)},
		{1, math3d.V3(1, 0, 0)},
		{2, math3d.V3(0, 2, 0)},
		{4, math3d.V3(0, 0, 3)},
		{5, math3d.V3(1, 0, 3)},
		{7, math3d.V3(1, 2, 3)},
	}
	for _, tc := range tests {
		if got := box.Corner(tc.index); got != tc.want {
			t.Errorf("Corner(%d) = %v, want %v", tc.index, got, tc.want)
		}
	}

	if got := box.PositiveVertex(math3d.V3(-1, 1, -1)); got != math3d.V3(0, 2, 0) {
		t.Errorf("PositiveVertex = %v, want (0, 2, 0)", got)
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := NewAABB(math3d.V3(0, 0, 0), math3d.V3(10, 10, 10))

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center", math3d.V3(5, 5, 5), true},
		{"corner min", math3d.V3(0, 0, 0), true},
		{"corner max", math3d.V3(10, 10, 10), true},
		{"edge", math3d.V3(5, 0, 5), true},
		{"outside X", math3d.V3(11, 5, 5), false},
		{"outside Y", math3d.V3(5, -1, 5), false},
		{"outside Z", math3d.V3(5, 5, 15), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := box.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestAABBOverlap(t *testing.T) {
	a := NewAABB(math3d.V3(0, 0, 0), math3d.V3(2, 2, 2))

	tests := []struct {
		name       string
		b          AABB
		intersects bool
		contains   bool
	}{
		{"inner", NewAABB(math3d.V3(0.5, 0.5, 0.5), math3d.V3(1, 1, 1)), true, true},
		{"overlapping", NewAABB(math3d.V3(1, 1, 1), math3d.V3(3, 3, 3)), true, false},
		{"touching", NewAABB(math3d.V3(2, 0, 0), math3d.V3(3, 1, 1)), true, false},
		{"disjoint", NewAABB(math3d.V3(5, 5, 5), math3d.V3(6, 6, 6)), false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Intersects(tc.b); got != tc.intersects {
				t.Errorf("Intersects = %v, want %v", got, tc.intersects)
			}
			if got := a.ContainsAABB(tc.b); got != tc.contains {
				t.Errorf("ContainsAABB = %v, want %v", got, tc.contains)
			}
		})
	}
}

func TestAABBClosestPoint(t *testing.T) {
	box := NewAABB(math3d.V3(0, 0, 0), math3d.V3(1, 1, 1))

	if got := box.ClosestPoint(math3d.V3(2, 0.5, -1)); got != math3d.V3(1, 0.5, 0) {
		t.Errorf("ClosestPoint = %v, want (1, 0.5, 0)", got)
	}
	if got := box.SquaredDistance(math3d.V3(2, 0.5, 0.5)); got != 1 {
		t.Errorf("SquaredDistance = %v, want 1", got)
	}
	if got := box.SquaredDistance(math3d.V3(0.5, 0.5, 0.5)); got != 0 {
		t.Errorf("SquaredDistance inside = %v, want 0", got)
	}
}

func TestAABBGrowTranslate(t *testing.T) {
	box := NewAABB(math3d.V3(0, 0, 0), math3d.V3(1, 1, 1))

	if got := box.Grow(0.5); got != NewAABB(math3d.V3(-0.5, -0.5, -0.5), math3d.V3(1.5, 1.5, 1.5)) {
		t.Errorf("Grow = %v", got)
	}
	if got := box.Translate(math3d.V3(1, 2, 3)); got != NewAABB(math3d.V3(1, 2, 3), math3d.V3(2, 3, 4)) {
		t.Errorf("Translate = %v", got)
	}
}

func TestAABBTransform(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	t.Run("translation", func(t *testing.T) {
		transformed := box.Transform(math3d.Translate(math3d.V3(10, 20, 30)))
		if transformed.Min != math3d.V3(9, 19, 29) {
			t.Errorf("translated min = %v, want (9, 19, 29)", transformed.Min)
		}
		if transformed.Max != math3d.V3(11, 21, 31) {
			t.Errorf("translated max = %v, want (11, 21, 31)", transformed.Max)
		}
	})

	t.Run("scale", func(t *testing.T) {
		transformed := box.Transform(math3d.ScaleUniform(2.0))
		if transformed.Min != math3d.V3(-2, -2, -2) || transformed.Max != math3d.V3(2, 2, 2) {
			t.Errorf("scaled = %v, want (-2..2)", transformed)
		}
	})

	t.Run("rotation", func(t *testing.T) {
		transformed := box.Transform(math3d.RotateY(math.Pi / 4))
		want := math.Sqrt2
		if math.Abs(transformed.Max.X-want) > 1e-9 || math.Abs(transformed.Max.Z-want) > 1e-9 {
			t.Errorf("rotated max = %v, want (%v, 1, %v)", transformed.Max, want, want)
		}
	})
}

func BenchmarkAABBTransform(b *testing.B) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	trans := math3d.Translate(math3d.V3(10, 0, 0)).Mul(math3d.RotateY(0.5))

	for b.Loop() {
		_ = box.Transform(trans)
	}
}
