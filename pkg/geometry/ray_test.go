package geometry

import (
	"math"
	"testing"

	"github.com/taigrr/clipspace/pkg/math3d"
)

func TestRayIntersections(t *testing.T) {
	r := NewRay(math3d.V3(0, 0, 5), math3d.V3(0, 0, -3))

	if r.Direction != math3d.V3(0, 0, -1) {
		t.Fatalf("direction not normalized: %v", r.Direction)
	}

	tests := []struct {
		name string
		hit  func() (float64, bool)
		want float64
		ok   bool
	}{
		{"plane", func() (float64, bool) { return r.IntersectPlane(NewPlane(math3d.V3(0, 0, 1), 0)) }, 5, true},
		{"plane behind", func() (float64, bool) { return r.IntersectPlane(NewPlane(math3d.V3(0, 0, 1), -10)) }, -5, false},
		{"parallel plane", func() (float64, bool) { return r.IntersectPlane(NewPlane(math3d.V3(1, 0, 0), 0)) }, 0, false},
		{"box", func() (float64, bool) {
			return r.IntersectAABB(NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)))
		}, 4, true},
		{"box missed", func() (float64, bool) {
			return r.IntersectAABB(NewAABB(math3d.V3(2, 2, -1), math3d.V3(3, 3, 1)))
		}, 0, false},
		{"sphere", func() (float64, bool) { return r.IntersectSphere(NewSphere(math3d.Vec3{}, 1)) }, 4, true},
		{"sphere missed", func() (float64, bool) { return r.IntersectSphere(NewSphere(math3d.V3(5, 0, 0), 1)) }, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.hit()
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("t = %v, want %v", got, tc.want)
			}
		})
	}

	if p := r.At(4); p != math3d.V3(0, 0, 1) {
		t.Errorf("At(4) = %v, want (0, 0, 1)", p)
	}
}

func TestRayInsideBox(t *testing.T) {
	r := NewRay(math3d.Vec3{}, math3d.V3(1, 1, 0))
	got, ok := r.IntersectAABB(NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)))
	if !ok || got != 0 {
		t.Errorf("ray from inside = (%v, %v), want (0, true)", got, ok)
	}
}
