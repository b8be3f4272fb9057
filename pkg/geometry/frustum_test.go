package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/taigrr/clipspace/pkg/math3d"
)

// forward returns the view direction of a camera with identity view for api.
func forward(api math3d.GraphicsAPI) math3d.Vec3 {
	if math3d.HandednessOf(api) == math3d.LeftHanded {
		return math3d.V3(0, 0, 1)
	}
	return math3d.Forward()
}

func cameraFrustum(api math3d.GraphicsAPI, eye, target math3d.Vec3, near, far float64) Frustum {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, near, far, api)
	view := math3d.LookAt(eye, target, math3d.Up(), api)
	return NewFrustumFromMatrix(math3d.ViewProjection(view, proj))
}

func TestNewFrustumDefaults(t *testing.T) {
	f := NewFrustum()

	want := map[int]Plane{
		FrustumLeft:   NewPlane(math3d.V3(1, 0, 0), 1),
		FrustumRight:  NewPlane(math3d.V3(-1, 0, 0), 1),
		FrustumBottom: NewPlane(math3d.V3(0, 1, 0), 1),
		FrustumTop:    NewPlane(math3d.V3(0, -1, 0), 1),
		FrustumNear:   NewPlane(math3d.V3(0, 0, 1), 1),
		FrustumFar:    NewPlane(math3d.V3(0, 0, -1), 1),
	}
	for i, p := range want {
		if f.Planes[i] != p {
			t.Errorf("plane %s = %v, want %v", planeNames[i], f.Planes[i], p)
		}
	}

	if !f.Contains(math3d.V3(0, 0, 0)) {
		t.Error("default frustum should contain the origin")
	}
	if f.Contains(math3d.V3(2, 0, 0)) {
		t.Error("default frustum should not contain (2, 0, 0)")
	}
}

func TestFrustumPlanesNormalized(t *testing.T) {
	for _, api := range math3d.AllGraphicsAPIs() {
		t.Run(api.String(), func(t *testing.T) {
			f := cameraFrustum(api, math3d.V3(3, 4, 5), math3d.V3(-2, 0, -8), 0.1, 500)
			for i, p := range f.Planes {
				if !p.IsNormalized(1e-3) {
					t.Errorf("%s plane normal length = %v", planeNames[i], p.Normal.Len())
				}
			}
		})
	}
}

func TestFrustumExtractionIdempotent(t *testing.T) {
	m := math3d.ViewProjection(
		math3d.LookAt(math3d.V3(1, 2, 3), math3d.V3(0, 0, -5), math3d.Up(), math3d.WebGPU),
		math3d.Perspective(math3d.Radians(75), 1.25, 0.3, 80, math3d.WebGPU),
	)

	a := NewFrustumFromMatrix(m)
	b := NewFrustum()
	b.ExtractFromMatrix(m)
	b.ExtractFromMatrix(m)

	if a != b {
		t.Errorf("repeated extraction differs:\n%v\n%v", a, b)
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	for _, api := range math3d.AllGraphicsAPIs() {
		t.Run(api.String(), func(t *testing.T) {
			proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100, api)
			frustum := NewFrustumFromMatrix(proj)
			fwd := forward(api)

			tests := []struct {
				name     string
				point    math3d.Vec3
				expected bool
			}{
				{"center near", fwd.Scale(1), true},
				{"center mid", fwd.Scale(50), true},
				{"center far", fwd.Scale(99), true},
				{"behind camera", fwd.Scale(-1), false},
				{"too far", fwd.Scale(200), false},
				{"too close", fwd.Scale(0.01), false},
				{"off to the side", fwd.Scale(10).Add(math3d.V3(50, 0, 0)), false},
				{"above", fwd.Scale(10).Add(math3d.V3(0, 20, 0)), false},
			}

			for _, tc := range tests {
				t.Run(tc.name, func(t *testing.T) {
					if got := frustum.Contains(tc.point); got != tc.expected {
						t.Errorf("Contains(%v) = %v, want %v", tc.point, got, tc.expected)
					}
				})
			}
		})
	}
}

func TestFrustumContainsVulkanLookAt(t *testing.T) {
	proj := math3d.Perspective(math3d.Radians(60), 1, 1, 100, math3d.Vulkan)
	view := math3d.LookAt(math3d.V3(0, 0, 0), math3d.V3(0, 0, -10), math3d.Up(), math3d.Vulkan)
	f := NewFrustumFromMatrix(math3d.ViewProjection(view, proj))

	if !f.Contains(math3d.V3(0, 0, -10)) {
		t.Error("(0, 0, -10) should be inside")
	}
	if f.Contains(math3d.V3(0, 0, 10)) {
		t.Error("(0, 0, 10) should be outside")
	}
}

func TestFrustumContainsEps(t *testing.T) {
	f := NewFrustum()
	onRight := math3d.V3(1, 0, 0)

	if f.Contains(onRight) {
		t.Error("point on a plane fails the default epsilon")
	}
	if !f.ContainsEps(onRight, 0) {
		t.Error("point on a plane passes eps = 0")
	}
	if !f.ContainsEps(math3d.V3(1.25, 0, 0), -0.5) {
		t.Error("negative eps should admit points slightly outside")
	}
}

func TestFrustumRotatedCamera(t *testing.T) {
	for _, api := range math3d.AllGraphicsAPIs() {
		t.Run(api.String(), func(t *testing.T) {
			f := cameraFrustum(api, math3d.V3(0, 0, 0), math3d.V3(10, 0, 0), 1, 100)

			if !f.Contains(math3d.V3(10, 0, 0)) {
				t.Error("point in front of rotated camera should be visible")
			}
			if f.Contains(math3d.V3(-10, 0, 0)) {
				t.Error("point behind rotated camera should not be visible")
			}
		})
	}
}

func TestFrustumModelSpace(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 1, 1, 100, math3d.Vulkan)
	view := math3d.LookAt(math3d.V3(0, 0, 0), math3d.V3(0, 0, -1), math3d.Up(), math3d.Vulkan)
	model := math3d.Translate(math3d.V3(0, 0, -20))

	local := NewFrustumFromMatrix(math3d.MVP(model, view, proj))

	// The model origin sits 20 units ahead of the camera.
	if !local.Contains(math3d.V3(0, 0, 0)) {
		t.Error("model origin should be inside the local-space frustum")
	}
	// Local z = +25 is world z = 5, behind the camera.
	if local.Contains(math3d.V3(0, 0, 25)) {
		t.Error("point behind the camera should be outside the local-space frustum")
	}
}

func TestFrustumIntersectsAABB(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 1, 100, math3d.OpenGL)
	frustum := NewFrustumFromMatrix(proj)

	tests := []struct {
		name       string
		box        AABB
		intersects bool
		contained  bool
	}{
		{
			"fully inside",
			NewAABB(math3d.V3(-1, -1, -10), math3d.V3(1, 1, -5)),
			true, true,
		},
		{
			"crosses near plane",
			NewAABB(math3d.V3(-1, -1, -2), math3d.V3(1, 1, 2)),
			true, false,
		},
		{
			"behind camera",
			NewAABB(math3d.V3(-1, -1, 5), math3d.V3(1, 1, 10)),
			false, false,
		},
		{
			"beyond far plane",
			NewAABB(math3d.V3(-1, -1, -150), math3d.V3(1, 1, -120)),
			false, false,
		},
		{
			"far to the right",
			NewAABB(math3d.V3(100, -1, -10), math3d.V3(110, 1, -5)),
			false, false,
		},
		{
			"large box containing frustum",
			NewAABB(math3d.V3(-200, -200, -200), math3d.V3(200, 200, 200)),
			true, false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectsAABB(tc.box); got != tc.intersects {
				t.Errorf("IntersectsAABB(%v) = %v, want %v", tc.box, got, tc.intersects)
			}
			if got := frustum.ContainsFullyAABB(tc.box); got != tc.contained {
				t.Errorf("ContainsFullyAABB(%v) = %v, want %v", tc.box, got, tc.contained)
			}
		})
	}
}

func TestFrustumSphereQueries(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 1, 100, math3d.Metal)
	frustum := NewFrustumFromMatrix(proj)

	tests := []struct {
		name       string
		sphere     Sphere
		intersects bool
		contained  bool
	}{
		{"inside", NewSphere(math3d.V3(0, 0, 10), 1), true, true},
		{"straddles near plane", NewSphere(math3d.V3(0, 0, 0.5), 1), true, false},
		{"behind", NewSphere(math3d.V3(0, 0, -5), 1), false, false},
		{"far behind", NewSphere(math3d.V3(0, 0, -20), 1), false, false},
		{"beyond far plane", NewSphere(math3d.V3(0, 0, 150), 10), false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectsSphere(tc.sphere); got != tc.intersects {
				t.Errorf("IntersectsSphere(%v) = %v, want %v", tc.sphere, got, tc.intersects)
			}
			if got := frustum.ContainsFullySphere(tc.sphere); got != tc.contained {
				t.Errorf("ContainsFullySphere(%v) = %v, want %v", tc.sphere, got, tc.contained)
			}
		})
	}
}

func TestFrustumSphereMonotonicInRadius(t *testing.T) {
	f := cameraFrustum(math3d.Vulkan, math3d.V3(0, 2, 0), math3d.V3(0, 0, -10), 0.5, 100)
	rng := rand.New(rand.NewSource(7))

	for range 500 {
		c := math3d.V3(rng.Float64()*300-150, rng.Float64()*300-150, rng.Float64()*300-150)
		r1 := rng.Float64() * 20
		r2 := r1 + rng.Float64()*20

		small := f.IntersectsSphere(NewSphere(c, r1))
		large := f.IntersectsSphere(NewSphere(c, r2))
		if small && !large {
			t.Fatalf("sphere at %v intersects with r=%v but not r=%v", c, r1, r2)
		}

		if f.ContainsFullySphere(NewSphere(c, r2)) && !f.ContainsFullySphere(NewSphere(c, r1)) {
			t.Fatalf("sphere at %v contained with r=%v but not r=%v", c, r2, r1)
		}
	}
}

func TestFrustumSphereGrowsIntoView(t *testing.T) {
	centers := []math3d.Vec3{
		math3d.V3(0, 2, 30),     // behind the camera
		math3d.V3(-200, 0, -20), // far left
		math3d.V3(0, 0, -400),   // past the far plane
	}

	for _, api := range math3d.AllGraphicsAPIs() {
		f := cameraFrustum(api, math3d.V3(0, 2, 0), math3d.V3(0, 0, -10), 0.5, 100)
		for _, c := range centers {
			if f.IntersectsSphere(NewSphere(c, 0)) {
				t.Fatalf("%s: point %v should start outside", api, c)
			}

			flips := 0
			prev := false
			for r := 0.0; r <= 500; r += 0.5 {
				got := f.IntersectsSphere(NewSphere(c, r))
				if got != prev {
					if !got {
						t.Fatalf("%s: sphere at %v stops intersecting at r=%v", api, c, r)
					}
					flips++
				}
				prev = got
			}
			if flips != 1 {
				t.Errorf("%s: sphere at %v changed %d times, want exactly one false to true", api, c, flips)
			}
		}
	}
}

func TestFrustumAABBNoFalseNegatives(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, api := range math3d.AllGraphicsAPIs() {
		t.Run(api.String(), func(t *testing.T) {
			f := cameraFrustum(api, math3d.V3(0, 5, 10), math3d.V3(0, 0, 0), 0.5, 60)

			for range 1000 {
				lo := math3d.V3(rng.Float64()*120-60, rng.Float64()*120-60, rng.Float64()*120-60)
				size := math3d.V3(rng.Float64()*15, rng.Float64()*15, rng.Float64()*15)
				box := NewAABB(lo, lo.Add(size))

				inside := false
				for i := range 8 {
					inside = inside || f.Contains(box.Corner(i))
				}
				for range 24 {
					p := lo.Add(size.Mul(math3d.V3(rng.Float64(), rng.Float64(), rng.Float64())))
					inside = inside || f.Contains(p)
				}

				if inside && !f.IntersectsAABB(box) {
					t.Fatalf("IntersectsAABB(%v) = false but a sampled point is inside", box)
				}
				if f.ContainsFullyAABB(box) && !f.IntersectsAABB(box) {
					t.Fatalf("box %v fully contained but not intersecting", box)
				}
			}
		})
	}
}

func TestFrustumClassify(t *testing.T) {
	f := NewFrustumFromMatrix(math3d.Perspective(math.Pi/2, 1, 1, 100, math3d.DirectX))

	tests := []struct {
		name string
		box  AABB
		want Classification
	}{
		{"inside", NewAABB(math3d.V3(-1, -1, 9), math3d.V3(1, 1, 11)), Inside},
		{"straddling", NewAABB(math3d.V3(-1, -1, 90), math3d.V3(1, 1, 110)), Intersecting},
		{"outside", NewAABB(math3d.V3(-1, -1, -11), math3d.V3(1, 1, -9)), Outside},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.ClassifyAABB(tc.box); got != tc.want {
				t.Errorf("ClassifyAABB = %v, want %v", got, tc.want)
			}
			if got := f.ClassifySphere(SphereFromAABB(tc.box)); tc.want == Outside && got != Outside {
				t.Errorf("ClassifySphere = %v, want outside", got)
			}
		})
	}
}

func TestFrustumString(t *testing.T) {
	if s := NewFrustum().String(); len(s) == 0 {
		t.Error("String returned empty")
	}
}

func BenchmarkFrustumExtraction(b *testing.B) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 1000.0, math3d.Vulkan)
	view := math3d.LookAt(math3d.V3(0, 10, 20), math3d.V3(0, 0, 0), math3d.Up(), math3d.Vulkan)
	viewProj := math3d.ViewProjection(view, proj)

	for b.Loop() {
		_ = NewFrustumFromMatrix(viewProj)
	}
}

func BenchmarkFrustumIntersectsAABB(b *testing.B) {
	frustum := NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 1000.0, math3d.OpenGL))

	visible := NewAABB(math3d.V3(-1, -1, -15), math3d.V3(1, 1, -5))
	b.Run("visible", func(b *testing.B) {
		for b.Loop() {
			_ = frustum.IntersectsAABB(visible)
		}
	})

	culled := NewAABB(math3d.V3(-1, -1, 5), math3d.V3(1, 1, 15))
	b.Run("culled", func(b *testing.B) {
		for b.Loop() {
			_ = frustum.IntersectsAABB(culled)
		}
	})
}

func BenchmarkFrustumContainsFullyAABB(b *testing.B) {
	frustum := NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 1000.0, math3d.OpenGL))
	box := NewAABB(math3d.V3(-1, -1, -15), math3d.V3(1, 1, -5))

	for b.Loop() {
		_ = frustum.ContainsFullyAABB(box)
	}
}

func BenchmarkFrustumIntersectsSphere(b *testing.B) {
	frustum := NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 1000.0, math3d.OpenGL))
	sphere := NewSphere(math3d.V3(0, 0, -10), 2)

	for b.Loop() {
		_ = frustum.IntersectsSphere(sphere)
	}
}

func BenchmarkCullingScenario(b *testing.B) {
	frustum := cameraFrustum(math3d.Vulkan, math3d.V3(0, 10, 20), math3d.V3(0, 0, 0), 0.1, 100)

	rng := rand.New(rand.NewSource(42))
	local := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	transforms := make([]math3d.Mat4, 100)
	for i := range transforms {
		x := rng.Float64()*100 - 50
		y := rng.Float64() * 10
		z := rng.Float64()*100 - 50
		transforms[i] = math3d.Translate(math3d.V3(x, y, z))
	}

	for b.Loop() {
		visible := 0
		for _, m := range transforms {
			if frustum.IntersectsAABB(local.Transform(m)) {
				visible++
			}
		}
		_ = visible
	}
}
