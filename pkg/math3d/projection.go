package math3d

import "math"

// Perspective creates a perspective projection for api.
// fovy is the vertical field of view in radians and aspect is width/height.
//
// The builder is chosen from the backend's handedness and depth range, and
// the Y scale term is negated for backends whose NDC Y axis points down.
// Degenerate input (aspect 0, near == far, fovy 0) produces inf or NaN
// entries; nothing is validated.
func Perspective(fovy, aspect, near, far float64, api GraphicsAPI) Mat4 {
	var m Mat4
	zeroToOne := ClipSpaceDepthOf(api) == ZeroToOne
	switch HandednessOf(api) {
	case RightHanded:
		if zeroToOne {
			m = PerspectiveRHZO(fovy, aspect, near, far)
		} else {
			m = PerspectiveRHNO(fovy, aspect, near, far)
		}
	case LeftHanded:
		if zeroToOne {
			m = PerspectiveLHZO(fovy, aspect, near, far)
		} else {
			m = PerspectiveLHNO(fovy, aspect, near, far)
		}
	}
	if NeedsYFlip(api) {
		m[5] = -m[5]
	}
	return m
}

// Orthographic creates an orthographic projection for api, following the
// same dispatch and Y-flip rules as Perspective.
func Orthographic(left, right, bottom, top, near, far float64, api GraphicsAPI) Mat4 {
	var m Mat4
	zeroToOne := ClipSpaceDepthOf(api) == ZeroToOne
	switch HandednessOf(api) {
	case RightHanded:
		if zeroToOne {
			m = OrthoRHZO(left, right, bottom, top, near, far)
		} else {
			m = OrthoRHNO(left, right, bottom, top, near, far)
		}
	case LeftHanded:
		if zeroToOne {
			m = OrthoLHZO(left, right, bottom, top, near, far)
		} else {
			m = OrthoLHNO(left, right, bottom, top, near, far)
		}
	}
	if NeedsYFlip(api) {
		m[5] = -m[5]
	}
	return m
}

// LookAt creates a view matrix from eye towards target using the handedness
// of api. View matrices are never Y-flipped; the flip lives in the
// projection.
func LookAt(eye, target, up Vec3, api GraphicsAPI) Mat4 {
	if HandednessOf(api) == LeftHanded {
		return LookAtLH(eye, target, up)
	}
	return LookAtRH(eye, target, up)
}

// LookAtRH creates a right-handed view matrix: the camera looks down -Z.
func LookAtRH(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize() // Forward
	s := f.Cross(up).Normalize()     // Right
	u := s.Cross(f)                  // Up (recomputed)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// LookAtLH creates a left-handed view matrix: the camera looks down +Z.
func LookAtLH(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := up.Cross(f).Normalize()
	u := f.Cross(s)

	return Mat4{
		s.X, u.X, f.X, 0,
		s.Y, u.Y, f.Y, 0,
		s.Z, u.Z, f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), -f.Dot(eye), 1,
	}
}

// PerspectiveRHZO is a right-handed perspective projection mapping view
// depth -near..-far to NDC z 0..1.
func PerspectiveRHZO(fovy, aspect, near, far float64) Mat4 {
	t := math.Tan(fovy / 2)
	return Mat4{
		1 / (aspect * t), 0, 0, 0,
		0, 1 / t, 0, 0,
		0, 0, far / (near - far), -1,
		0, 0, -(far * near) / (far - near), 0,
	}
}

// PerspectiveRHNO is a right-handed perspective projection mapping view
// depth -near..-far to NDC z -1..1.
func PerspectiveRHNO(fovy, aspect, near, far float64) Mat4 {
	t := math.Tan(fovy / 2)
	return Mat4{
		1 / (aspect * t), 0, 0, 0,
		0, 1 / t, 0, 0,
		0, 0, -(far + near) / (far - near), -1,
		0, 0, -(2 * far * near) / (far - near), 0,
	}
}

// PerspectiveLHZO is a left-handed perspective projection mapping view
// depth near..far to NDC z 0..1.
func PerspectiveLHZO(fovy, aspect, near, far float64) Mat4 {
	t := math.Tan(fovy / 2)
	return Mat4{
		1 / (aspect * t), 0, 0, 0,
		0, 1 / t, 0, 0,
		0, 0, far / (far - near), 1,
		0, 0, -(far * near) / (far - near), 0,
	}
}

// PerspectiveLHNO is a left-handed perspective projection mapping view
// depth near..far to NDC z -1..1.
func PerspectiveLHNO(fovy, aspect, near, far float64) Mat4 {
	t := math.Tan(fovy / 2)
	return Mat4{
		1 / (aspect * t), 0, 0, 0,
		0, 1 / t, 0, 0,
		0, 0, (far + near) / (far - near), 1,
		0, 0, -(2 * far * near) / (far - near), 0,
	}
}

// orthoXY fills the terms shared by every orthographic variant.
func orthoXY(left, right, bottom, top float64) Mat4 {
	return Mat4{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, 0, 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), 0, 1,
	}
}

// OrthoRHZO is a right-handed orthographic projection with depth 0..1.
func OrthoRHZO(left, right, bottom, top, near, far float64) Mat4 {
	m := orthoXY(left, right, bottom, top)
	m[10] = -1 / (far - near)
	m[14] = -near / (far - near)
	return m
}

// OrthoRHNO is a right-handed orthographic projection with depth -1..1.
func OrthoRHNO(left, right, bottom, top, near, far float64) Mat4 {
	m := orthoXY(left, right, bottom, top)
	m[10] = -2 / (far - near)
	m[14] = -(far + near) / (far - near)
	return m
}

// OrthoLHZO is a left-handed orthographic projection with depth 0..1.
func OrthoLHZO(left, right, bottom, top, near, far float64) Mat4 {
	m := orthoXY(left, right, bottom, top)
	m[10] = 1 / (far - near)
	m[14] = -near / (far - near)
	return m
}

// OrthoLHNO is a left-handed orthographic projection with depth -1..1.
func OrthoLHNO(left, right, bottom, top, near, far float64) Mat4 {
	m := orthoXY(left, right, bottom, top)
	m[10] = 2 / (far - near)
	m[14] = -(far + near) / (far - near)
	return m
}
