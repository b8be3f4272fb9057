package math3d

import (
	"math"
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 2, 2)))

	for b.Loop() {
		_ = m.Inverse()
	}
}

func BenchmarkMat4Float32(b *testing.B) {
	m := Perspective(math.Pi/3, 16.0/9.0, 0.1, 100, Vulkan)

	for b.Loop() {
		_ = m.Float32()
	}
}

func BenchmarkPerspective(b *testing.B) {
	for _, api := range AllGraphicsAPIs() {
		b.Run(api.String(), func(b *testing.B) {
			for b.Loop() {
				_ = Perspective(math.Pi/3, 1.333, 0.1, 100.0, api)
			}
		})
	}
}

func BenchmarkLookAt(b *testing.B) {
	eye := V3(0, 0, 10)
	target := V3(0, 0, 0)
	up := V3(0, 1, 0)

	for b.Loop() {
		_ = LookAt(eye, target, up, Metal)
	}
}

func BenchmarkViewProjection(b *testing.B) {
	view := LookAt(V3(0, 0, 10), V3(0, 0, 0), Up(), Vulkan)
	proj := Perspective(math.Pi/3, 1.333, 0.1, 100.0, Vulkan)

	for b.Loop() {
		_ = ViewProjection(view, proj)
	}
}
