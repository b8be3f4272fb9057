package geometry

import (
	"math"
	"testing"

	"github.com/taigrr/clipspace/pkg/math3d"
)

func TestSphereExpand(t *testing.T) {
	s := EmptySphere()
	if s.IsValid() {
		t.Fatal("empty sphere should be invalid")
	}

	s = s.Expand(math3d.V3(0, 0, 0))
	if !s.IsValid() || s.Radius != 0 || s.Center != (math3d.Vec3{}) {
		t.Fatalf("first expand = %v, want point sphere at origin", s)
	}

	s = s.Expand(math3d.V3(2, 0, 0))
	if !s.Center.ApproxEqual(math3d.V3(1, 0, 0), 1e-12) || math.Abs(s.Radius-1) > 1e-12 {
		t.Fatalf("second expand = %v, want center (1,0,0) radius 1", s)
	}

	before := s
	if s = s.Expand(math3d.V3(1, 0.5, 0)); s != before {
		t.Errorf("expanding by an interior point changed the sphere: %v", s)
	}

	points := []math3d.Vec3{{X: 0}, {X: 2}, {X: 1, Y: 3}, {X: -2, Z: 1}}
	s = EmptySphere()
	for _, p := range points {
		s = s.Expand(p)
	}
	for _, p := range points {
		if s.SignedDistance(p) > 1e-9 {
			t.Errorf("point %v outside expanded sphere %v", p, s)
		}
	}
}

func TestSphereQueries(t *testing.T) {
	s := NewSphere(math3d.V3(0, 0, 0), 2)

	if !s.ContainsPoint(math3d.V3(0, 2, 0)) || s.ContainsPoint(math3d.V3(0, 2.1, 0)) {
		t.Error("ContainsPoint boundary misclassified")
	}
	if EmptySphere().ContainsPoint(math3d.Vec3{}) {
		t.Error("empty sphere should contain nothing")
	}
	if !s.Intersects(NewSphere(math3d.V3(3, 0, 0), 1)) {
		t.Error("touching spheres should intersect")
	}
	if s.Intersects(NewSphere(math3d.V3(5, 0, 0), 1)) {
		t.Error("separate spheres should not intersect")
	}
	if !s.IntersectsAABB(NewAABB(math3d.V3(1, 1, -1), math3d.V3(3, 3, 1))) {
		t.Error("sphere should touch box corner region")
	}
	if s.IntersectsAABB(NewAABB(math3d.V3(2, 2, 2), math3d.V3(3, 3, 3))) {
		t.Error("sphere should miss far box")
	}

	if got := s.SignedDistance(math3d.V3(5, 0, 0)); got != 3 {
		t.Errorf("SignedDistance = %v, want 3", got)
	}
	if got := s.ClosestPoint(math3d.V3(0, 0, -9)); got != math3d.V3(0, 0, -2) {
		t.Errorf("ClosestPoint = %v, want (0, 0, -2)", got)
	}
	if got := s.BoundingBox(); got != NewAABB(math3d.V3(-2, -2, -2), math3d.V3(2, 2, 2)) {
		t.Errorf("BoundingBox = %v", got)
	}
}

func TestSphereMeasures(t *testing.T) {
	s := NewSphere(math3d.V3(1, 1, 1), 1)
	if math.Abs(s.Volume()-4.0/3.0*math.Pi) > 1e-12 {
		t.Errorf("Volume = %v", s.Volume())
	}
	if math.Abs(s.SurfaceArea()-4*math.Pi) > 1e-12 {
		t.Errorf("SurfaceArea = %v", s.SurfaceArea())
	}
	if EmptySphere().Volume() != 0 {
		t.Error("empty sphere volume should be 0")
	}

	b := SphereFromAABB(NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)))
	if math.Abs(b.Radius-math.Sqrt(3)) > 1e-12 {
		t.Errorf("SphereFromAABB radius = %v, want sqrt(3)", b.Radius)
	}
}
